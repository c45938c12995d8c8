package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

// Storage stages uploaded assets in the upload directory
type Storage struct {
	layout domain.Layout
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(layout domain.Layout, logger *slog.Logger) *Storage {
	return &Storage{
		layout: layout,
		logger: logger,
	}
}

// Stage writes each upload under its original name, replacing any file with
// the same name, and returns the staged paths in upload order.
func (s *Storage) Stage(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, err := StagedName(file.Filename)
		if err != nil {
			return nil, err
		}

		path := s.layout.UploadPath(name)
		written, err := s.save(file, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorage, name, err)
		}

		s.logger.Debug("Upload staged",
			slog.String("filename", name),
			slog.Int64("bytes", written),
		)
		paths = append(paths, path)
	}

	return paths, nil
}

func (s *Storage) save(file *multipart.FileHeader, path string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		return written, err
	}

	return written, dst.Close()
}

// StagedName validates an upload's filename for use inside the upload directory.
// The name is kept verbatim unless it tries to leave that directory.
func StagedName(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", fmt.Errorf("%w: empty filename", domain.ErrInvalidFilename)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q contains a path separator", domain.ErrInvalidFilename, filename)
	}
	if name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFilename, filename)
	}
	return filename, nil
}
