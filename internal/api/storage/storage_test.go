package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/cuongbtq/movie-maker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	name    string
	content string
}

// buildFileHeaders encodes uploads as a multipart form and parses them back
func buildFileHeaders(t *testing.T, uploads []upload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, u := range uploads {
		part, err := writer.CreateFormFile("files", u.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(u.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["files"]
}

func newTestStorage(t *testing.T) (*Storage, domain.Layout) {
	t.Helper()
	layout := domain.Layout{
		OutputDir: t.TempDir(),
		UploadDir: t.TempDir(),
	}
	return NewStorage(layout, slog.New(slog.NewTextHandler(io.Discard, nil))), layout
}

func TestStorage_StagePreservesOrderAndNames(t *testing.T) {
	s, layout := newTestStorage(t)
	files := buildFileHeaders(t, []upload{
		{name: "zeta.mp4", content: "z"},
		{name: "alpha.png", content: "a"},
		{name: "mid dle.jpg", content: "m"},
	})

	paths, err := s.Stage(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(layout.UploadDir, "zeta.mp4"),
		filepath.Join(layout.UploadDir, "alpha.png"),
		filepath.Join(layout.UploadDir, "mid dle.jpg"),
	}, paths)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestStorage_StageOverwritesSameName(t *testing.T) {
	s, layout := newTestStorage(t)
	require.NoError(t, os.WriteFile(filepath.Join(layout.UploadDir, "clip.mp4"), []byte("old content"), 0o644))

	paths, err := s.Stage(context.Background(), buildFileHeaders(t, []upload{{name: "clip.mp4", content: "new"}}))
	require.NoError(t, err)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestStorage_StageNoFiles(t *testing.T) {
	s, _ := newTestStorage(t)

	paths, err := s.Stage(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestStorage_StageWriteFailure(t *testing.T) {
	s, layout := newTestStorage(t)
	s.layout.UploadDir = filepath.Join(layout.UploadDir, "missing")

	_, err := s.Stage(context.Background(), buildFileHeaders(t, []upload{{name: "a.png", content: "a"}}))
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestStorage_StageCanceled(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Stage(ctx, buildFileHeaders(t, []upload{{name: "a.png", content: "a"}}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStagedName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{name: "plain name", filename: "photo.png"},
		{name: "spaces kept", filename: "my photo.png"},
		{name: "unicode kept", filename: "фото.jpg"},
		{name: "empty", filename: "", wantErr: true},
		{name: "blank", filename: "   ", wantErr: true},
		{name: "dot", filename: ".", wantErr: true},
		{name: "dot dot", filename: "..", wantErr: true},
		{name: "traversal", filename: "../etc/passwd", wantErr: true},
		{name: "windows traversal", filename: `..\secret`, wantErr: true},
		{name: "nested", filename: "a/b.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StagedName(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidFilename)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.filename, got)
		})
	}
}
