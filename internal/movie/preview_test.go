package movie

import (
	"context"
	"os"
	"testing"

	"github.com/cuongbtq/movie-maker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewer_MissingMovie(t *testing.T) {
	layout := newTestLayout(t)
	runner := &fakeRunner{}
	previewer := NewPreviewer(&PreviewerConfig{Layout: layout, Runner: runner})

	path, err := previewer.ExtractPreview(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Empty(t, path)
	assert.Empty(t, runner.Calls())
}

func TestPreviewer_ExtractPreview(t *testing.T) {
	layout := newTestLayout(t)
	require.NoError(t, os.WriteFile(layout.VideoPath("job"), []byte("movie"), 0o644))

	runner := &fakeRunner{output: []byte("jpeg")}
	previewer := NewPreviewer(&PreviewerConfig{Layout: layout, Runner: runner})

	path, err := previewer.ExtractPreview(context.Background(), "job")
	require.NoError(t, err)
	assert.Equal(t, layout.PreviewPath("job"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestPreviewer_SameTimestampEveryCall(t *testing.T) {
	layout := newTestLayout(t)
	require.NoError(t, os.WriteFile(layout.VideoPath("job"), []byte("movie"), 0o644))

	runner := &fakeRunner{output: []byte("jpeg")}
	previewer := NewPreviewer(&PreviewerConfig{Layout: layout, Runner: runner})

	for i := 0; i < 2; i++ {
		_, err := previewer.ExtractPreview(context.Background(), "job")
		require.NoError(t, err)
	}

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0].Args, calls[1].Args)
	assert.Contains(t, calls[0].Args, PreviewTimestamp)
}

func TestPreviewer_ToolFailure(t *testing.T) {
	layout := newTestLayout(t)
	require.NoError(t, os.WriteFile(layout.VideoPath("job"), nil, 0o644))

	previewer := NewPreviewer(&PreviewerConfig{Layout: layout, Runner: &fakeRunner{failErr: errExit}})

	_, err := previewer.ExtractPreview(context.Background(), "job")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
