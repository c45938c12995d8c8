package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SweepResult summarizes one retention pass
type SweepResult struct {
	Scanned int
	Removed int
	Failed  int
}

// Sweep dispatches every regular file older than the TTL to the worker pool
// and waits for the pool to finish with them
func (w *Worker) Sweep(ctx context.Context) (SweepResult, error) {
	start := time.Now()
	cutoff := w.now().Add(-w.ttl)

	var (
		result  SweepResult
		mu      sync.Mutex
		pending sync.WaitGroup
	)

	done := func(err error) {
		mu.Lock()
		if err != nil {
			result.Failed++
		} else {
			result.Removed++
		}
		mu.Unlock()
		pending.Done()
	}

	var dispatchErr error
	for _, dir := range w.dirs {
		expired, scanned, err := expiredFiles(dir, cutoff)
		mu.Lock()
		result.Scanned += scanned
		mu.Unlock()
		if err != nil {
			dispatchErr = errors.Join(dispatchErr, err)
			continue
		}

		for _, path := range expired {
			pending.Add(1)
			select {
			case w.jobsChan <- &removal{path: path, done: done}:
			case <-ctx.Done():
				pending.Done()
				pending.Wait()
				return w.snapshot(&mu, &result), ctx.Err()
			case <-w.stopChan:
				pending.Done()
				pending.Wait()
				return w.snapshot(&mu, &result), errors.New("worker stopped")
			}
		}
	}

	pending.Wait()

	final := w.snapshot(&mu, &result)
	w.logger.Info("Retention sweep finished",
		slog.Int("scanned", final.Scanned),
		slog.Int("removed", final.Removed),
		slog.Int("failed", final.Failed),
		slog.Duration("elapsed", time.Since(start)),
	)

	return final, dispatchErr
}

func (w *Worker) snapshot(mu *sync.Mutex, result *SweepResult) SweepResult {
	mu.Lock()
	defer mu.Unlock()
	return *result
}

// expiredFiles lists regular files directly inside dir modified before cutoff
func expiredFiles(dir string, cutoff time.Time) ([]string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("read %s: %w", dir, err)
	}

	var expired []string
	scanned := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		scanned++
		if info.ModTime().Before(cutoff) {
			expired = append(expired, filepath.Join(dir, entry.Name()))
		}
	}

	return expired, scanned, nil
}
