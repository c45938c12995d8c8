package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

// PreviewerConfig holds previewer dependencies
type PreviewerConfig struct {
	Logger    *slog.Logger
	Layout    domain.Layout
	Runner    Runner
	FFmpegBin string
}

// Previewer grabs still frames from finished movies
type Previewer struct {
	logger    *slog.Logger
	layout    domain.Layout
	runner    Runner
	ffmpegBin string
}

// NewPreviewer creates a new Previewer instance
func NewPreviewer(cfg *PreviewerConfig) *Previewer {
	p := &Previewer{
		logger:    cfg.Logger,
		layout:    cfg.Layout,
		runner:    cfg.Runner,
		ffmpegBin: cfg.FFmpegBin,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.runner == nil {
		p.runner = ExecRunner{}
	}
	if p.ffmpegBin == "" {
		p.ffmpegBin = DefaultFFmpegBin
	}
	return p
}

// ExtractPreview writes the frame at PreviewTimestamp to the job's preview
// path and returns it. The frame is re-extracted on every call.
// Returns domain.ErrJobNotFound when the job has no movie.
func (p *Previewer) ExtractPreview(ctx context.Context, jobID string) (string, error) {
	moviePath := p.layout.VideoPath(jobID)
	if _, err := os.Stat(moviePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrJobNotFound
		}
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	previewPath := p.layout.PreviewPath(jobID)
	if _, err := p.runner.Run(ctx, nil, p.ffmpegBin, frameArgs(moviePath, previewPath)...); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			p.logger.Error("ffmpeg frame extraction failed",
				slog.String("job_id", jobID),
				slog.String("output", cmdErr.Tail(2048)),
			)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}

	return previewPath, nil
}
