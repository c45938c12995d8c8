package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Defaults applied to unset fields
const (
	DefaultOutputDir          = "generated_movies"
	DefaultUploadDir          = "uploads"
	DefaultIndexPath          = "index.html"
	DefaultFFmpegBin          = "ffmpeg"
	DefaultNarrationBin       = "gtts-cli"
	DefaultNarrationLanguage  = "en"
	DefaultMaxMultipartMemory = 32 << 20
	DefaultSweepInterval      = time.Hour
	DefaultSweepConcurrency   = 4
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	App       AppConfig       `yaml:"app"`
	Media     MediaConfig     `yaml:"media"`
	Narration NarrationConfig `yaml:"narration"`
	Retention RetentionConfig `yaml:"retention"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               int           `yaml:"port"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxMultipartMemory int64         `yaml:"max_multipart_memory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// MediaConfig holds artifact locations and the video tool settings
type MediaConfig struct {
	OutputDir  string        `yaml:"output_dir"`
	UploadDir  string        `yaml:"upload_dir"`
	IndexPath  string        `yaml:"index_path"`
	FFmpegBin  string        `yaml:"ffmpeg_bin"`
	JobTimeout time.Duration `yaml:"job_timeout"`
}

// NarrationConfig holds the text-to-speech command settings
type NarrationConfig struct {
	Bin      string   `yaml:"bin"`
	Args     []string `yaml:"args"`
	Language string   `yaml:"language"`
}

// RetentionConfig holds artifact retention settings for the worker service
type RetentionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
	Concurrency     int           `yaml:"concurrency"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.ApplyDefaults()

	return &config, nil
}

// ApplyDefaults fills unset fields with their defaults
func (c *Config) ApplyDefaults() {
	if c.Server.MaxMultipartMemory <= 0 {
		c.Server.MaxMultipartMemory = DefaultMaxMultipartMemory
	}
	if c.Media.OutputDir == "" {
		c.Media.OutputDir = DefaultOutputDir
	}
	if c.Media.UploadDir == "" {
		c.Media.UploadDir = DefaultUploadDir
	}
	if c.Media.IndexPath == "" {
		c.Media.IndexPath = DefaultIndexPath
	}
	if c.Media.FFmpegBin == "" {
		c.Media.FFmpegBin = DefaultFFmpegBin
	}
	if c.Narration.Bin == "" {
		c.Narration.Bin = DefaultNarrationBin
	}
	if c.Narration.Language == "" {
		c.Narration.Language = DefaultNarrationLanguage
	}
	if c.Retention.SweepInterval <= 0 {
		c.Retention.SweepInterval = DefaultSweepInterval
	}
	if c.Retention.Concurrency <= 0 {
		c.Retention.Concurrency = DefaultSweepConcurrency
	}
}

// ValidateAPIConfig checks the settings the API service depends on
func (c *Config) ValidateAPIConfig() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.Media.OutputDir == "" {
		return fmt.Errorf("media output_dir is required")
	}

	if c.Media.UploadDir == "" {
		return fmt.Errorf("media upload_dir is required")
	}

	if c.Media.OutputDir == c.Media.UploadDir {
		return fmt.Errorf("media output_dir and upload_dir must differ")
	}

	if c.Media.JobTimeout < 0 {
		return fmt.Errorf("media job_timeout must not be negative")
	}

	return nil
}

// ValidateWorkerConfig checks the settings the retention worker depends on
func (c *Config) ValidateWorkerConfig() error {
	if c.Retention.TTL <= 0 {
		return fmt.Errorf("retention ttl must be greater than 0")
	}

	if c.Retention.SweepInterval <= 0 {
		return fmt.Errorf("retention sweep_interval must be greater than 0")
	}

	if c.Retention.Concurrency <= 0 {
		return fmt.Errorf("retention concurrency must be greater than 0")
	}

	if c.Retention.ShutdownTimeout <= 0 {
		return fmt.Errorf("retention shutdown_timeout must be greater than 0")
	}

	if c.Media.OutputDir == "" || c.Media.UploadDir == "" {
		return fmt.Errorf("media output_dir and upload_dir are required")
	}

	return nil
}
