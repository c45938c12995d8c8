package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuongbtq/movie-maker/internal/api/handler"
	"github.com/cuongbtq/movie-maker/internal/api/router"
	"github.com/cuongbtq/movie-maker/internal/api/storage"
	"github.com/cuongbtq/movie-maker/internal/config"
	"github.com/cuongbtq/movie-maker/internal/domain"
	"github.com/cuongbtq/movie-maker/internal/movie"
	"github.com/cuongbtq/movie-maker/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	layout := domain.Layout{
		OutputDir: cfg.Media.OutputDir,
		UploadDir: cfg.Media.UploadDir,
	}
	if err := ensureDirs(layout); err != nil {
		return err
	}

	r := initRouter(cfg, layout, appLogger.Logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
		slog.Duration("job_timeout", cfg.Media.JobTimeout),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", slog.String("signal", sig.String()))
	case err := <-serverErr:
		appLogger.Error("Server failed to start", slog.Any("error", err))
		return err
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// ensureDirs creates the output and upload directories
func ensureDirs(layout domain.Layout) error {
	for _, dir := range []string{layout.OutputDir, layout.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// initRouter wires the media pipeline into the Gin router
func initRouter(cfg *config.Config, layout domain.Layout, logger *slog.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	runner := movie.ExecRunner{}

	narrator := movie.NewNarrator(&movie.NarratorConfig{
		Logger:   logger,
		Runner:   runner,
		Bin:      cfg.Narration.Bin,
		Args:     cfg.Narration.Args,
		Language: cfg.Narration.Language,
	})

	handlerDeps := &handler.Dependencies{
		Logger: logger,
		Layout: layout,
		Stager: storage.NewStorage(layout, logger),
		Composer: movie.NewCompositor(&movie.CompositorConfig{
			Logger:      logger,
			Layout:      layout,
			Synthesizer: narrator,
			Runner:      runner,
			FFmpegBin:   cfg.Media.FFmpegBin,
		}),
		Previewer: movie.NewPreviewer(&movie.PreviewerConfig{
			Logger:    logger,
			Layout:    layout,
			Runner:    runner,
			FFmpegBin: cfg.Media.FFmpegBin,
		}),
		Library:    movie.NewLibrary(layout),
		IndexPath:  cfg.Media.IndexPath,
		JobTimeout: cfg.Media.JobTimeout,
	}

	return router.SetupRouter(handlerDeps, router.Options{
		MaxMultipartMemory: cfg.Server.MaxMultipartMemory,
	})
}
