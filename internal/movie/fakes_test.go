package movie

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/cuongbtq/movie-maker/internal/domain"
)

type runCall struct {
	Name  string
	Args  []string
	Stdin string
}

// fakeRunner records invocations and writes the last argument as the output file
type fakeRunner struct {
	mu      sync.Mutex
	calls   []runCall
	output  []byte
	failErr error
}

func (f *fakeRunner) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error) {
	call := runCall{Name: name, Args: append([]string(nil), args...)}
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		call.Stdin = string(data)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.failErr != nil {
		return "boom", &domain.CommandError{Name: name, Output: "boom", Err: f.failErr}
	}
	if f.output != nil && len(args) > 0 {
		if err := os.WriteFile(args[len(args)-1], f.output, 0o644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeRunner) Calls() []runCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runCall(nil), f.calls...)
}

type fakeSynthesizer struct {
	texts     []string
	paths     []string
	failErr   error
	skipWrite bool
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text, outputPath string) error {
	f.texts = append(f.texts, text)
	f.paths = append(f.paths, outputPath)
	if f.failErr != nil {
		return f.failErr
	}
	if f.skipWrite {
		return nil
	}
	return os.WriteFile(outputPath, []byte("mp3:"+text), 0o644)
}

var errExit = errors.New("exit status 1")
