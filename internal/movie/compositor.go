package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

// DefaultFFmpegBin is used when no video tool path is configured
const DefaultFFmpegBin = "ffmpeg"

// CompositorConfig holds compositor dependencies
type CompositorConfig struct {
	Logger      *slog.Logger
	Layout      domain.Layout
	Synthesizer Synthesizer
	Runner      Runner
	FFmpegBin   string
}

// Compositor combines narration with staged assets or a generated background
type Compositor struct {
	logger      *slog.Logger
	layout      domain.Layout
	synthesizer Synthesizer
	runner      Runner
	ffmpegBin   string
}

// NewCompositor creates a new Compositor instance
func NewCompositor(cfg *CompositorConfig) *Compositor {
	c := &Compositor{
		logger:      cfg.Logger,
		layout:      cfg.Layout,
		synthesizer: cfg.Synthesizer,
		runner:      cfg.Runner,
		ffmpegBin:   cfg.FFmpegBin,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.runner == nil {
		c.runner = ExecRunner{}
	}
	if c.ffmpegBin == "" {
		c.ffmpegBin = DefaultFFmpegBin
	}
	return c
}

// Compose builds the movie for job at outputPath.
//
// Narration is synthesized first. When the job has staged assets they are
// concatenated in order under the narration track; otherwise a 10 second
// colored background with the script's opening words is rendered. The output
// is trimmed to the shorter stream. A failed run is not cleaned up.
func (c *Compositor) Compose(ctx context.Context, job *domain.Job, outputPath string) error {
	start := time.Now()
	narrationPath := c.layout.NarrationPath(job.JobID)

	if err := c.synthesizer.Synthesize(ctx, job.Script, narrationPath); err != nil {
		return err
	}

	var args []string
	if len(job.Assets) > 0 {
		manifestPath := c.layout.ManifestPath(job.JobID)
		if err := writeManifest(manifestPath, job.Assets); err != nil {
			return err
		}
		args = concatArgs(manifestPath, narrationPath, outputPath)
	} else {
		color := Classify(job.Script)
		c.logger.Debug("No assets supplied, rendering background",
			slog.String("job_id", job.JobID),
			slog.String("color", string(color)),
		)
		args = backgroundArgs(color, job.Script, narrationPath, outputPath)
	}

	if _, err := c.runner.Run(ctx, nil, c.ffmpegBin, args...); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			c.logger.Error("ffmpeg composition failed",
				slog.String("job_id", job.JobID),
				slog.String("output", cmdErr.Tail(2048)),
			)
		}
		return fmt.Errorf("%w: %w", domain.ErrComposition, err)
	}

	c.logger.Info("Movie composed",
		slog.String("job_id", job.JobID),
		slog.Int("assets", len(job.Assets)),
		slog.String("output", outputPath),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// writeManifest lists the assets for the concat demuxer, in order
func writeManifest(path string, assets []string) error {
	var b strings.Builder
	for _, asset := range assets {
		abs, err := filepath.Abs(asset)
		if err != nil {
			return fmt.Errorf("%w: resolve %q: %v", domain.ErrStorage, asset, err)
		}
		b.WriteString(manifestLine(abs))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: write manifest: %v", domain.ErrStorage, err)
	}
	return nil
}
