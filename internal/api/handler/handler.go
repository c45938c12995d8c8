package handler

import (
	"context"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

// Stager persists uploaded assets and returns their paths in upload order
type Stager interface {
	Stage(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// Composer builds a job's movie at outputPath
type Composer interface {
	Compose(ctx context.Context, job *domain.Job, outputPath string) error
}

// PreviewExtractor grabs a still frame from a finished movie
type PreviewExtractor interface {
	ExtractPreview(ctx context.Context, jobID string) (string, error)
}

// MovieLibrary locates and removes finished movies
type MovieLibrary interface {
	Locate(jobID string) (string, error)
	Remove(jobID string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger     *slog.Logger
	Layout     domain.Layout
	Stager     Stager
	Composer   Composer
	Previewer  PreviewExtractor
	Library    MovieLibrary
	IndexPath  string
	JobTimeout time.Duration
}

// MovieHandler handles movie-related HTTP requests
type MovieHandler struct {
	logger     *slog.Logger
	layout     domain.Layout
	stager     Stager
	composer   Composer
	previewer  PreviewExtractor
	library    MovieLibrary
	indexPath  string
	jobTimeout time.Duration
}

// NewMovieHandler creates a new MovieHandler instance
func NewMovieHandler(deps *Dependencies) *MovieHandler {
	return &MovieHandler{
		logger:     deps.Logger,
		layout:     deps.Layout,
		stager:     deps.Stager,
		composer:   deps.Composer,
		previewer:  deps.Previewer,
		library:    deps.Library,
		indexPath:  deps.IndexPath,
		jobTimeout: deps.JobTimeout,
	}
}
