package movie

import (
	"errors"
	"fmt"
	"os"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

// Library locates and removes finished movies
type Library struct {
	layout domain.Layout
}

// NewLibrary creates a Library over layout
func NewLibrary(layout domain.Layout) *Library {
	return &Library{layout: layout}
}

// Locate returns the movie path for jobID, or domain.ErrJobNotFound
func (l *Library) Locate(jobID string) (string, error) {
	path := l.layout.VideoPath(jobID)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrJobNotFound
		}
		return "", fmt.Errorf("stat movie: %w", err)
	}
	if info.IsDir() {
		return "", domain.ErrJobNotFound
	}
	return path, nil
}

// Remove deletes every artifact owned by jobID. Staged uploads are shared
// between jobs and left to the retention worker.
func (l *Library) Remove(jobID string) error {
	if _, err := l.Locate(jobID); err != nil {
		return err
	}

	var errs []error
	for _, path := range l.layout.JobArtifacts(jobID) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
