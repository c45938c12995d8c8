package worker

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	modTime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func newTestWorker(t *testing.T, dirs ...string) *Worker {
	t.Helper()
	return NewWorker(&Config{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Dirs:          dirs,
		TTL:           time.Hour,
		SweepInterval: time.Hour,
		Concurrency:   3,
	})
}

func TestSweep_RemovesOnlyExpiredFiles(t *testing.T) {
	outputDir := t.TempDir()
	uploadDir := t.TempDir()

	oldMovie := filepath.Join(outputDir, "old.mp4")
	oldPreview := filepath.Join(outputDir, "old_preview.jpg")
	freshMovie := filepath.Join(outputDir, "fresh.mp4")
	oldUpload := filepath.Join(uploadDir, "clip.mov")
	writeAged(t, oldMovie, 2*time.Hour)
	writeAged(t, oldPreview, 3*time.Hour)
	writeAged(t, freshMovie, time.Minute)
	writeAged(t, oldUpload, 48*time.Hour)
	require.NoError(t, os.Mkdir(filepath.Join(outputDir, "nested"), 0o755))

	w := newTestWorker(t, outputDir, uploadDir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.spawnWorkerPool(ctx)
	defer w.Stop()

	result, err := w.Sweep(ctx)
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Scanned: 4, Removed: 3, Failed: 0}, result)
	for _, path := range []string{oldMovie, oldPreview, oldUpload} {
		_, err := os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist, path)
	}
	_, err = os.Stat(freshMovie)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "nested"))
	assert.NoError(t, err, "directories are never removed")
}

func TestSweep_MissingDirectory(t *testing.T) {
	w := newTestWorker(t, filepath.Join(t.TempDir(), "missing"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.spawnWorkerPool(ctx)
	defer w.Stop()

	result, err := w.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
}

func TestSweep_UsesClock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.mp4")
	writeAged(t, path, time.Minute)

	w := newTestWorker(t, dir)
	w.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.spawnWorkerPool(ctx)
	defer w.Stop()

	result, err := w.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
}

func TestSweep_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "a.mp4"), 2*time.Hour)

	// No pool is running, so dispatch can only end through ctx.
	w := newTestWorker(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Sweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorker_StartAndStop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.mp4")
	writeAged(t, path, 2*time.Hour)

	w := newTestWorker(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, 5*time.Second, 10*time.Millisecond)

	w.Stop()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}
