package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// removal is one expired file handed to the pool
type removal struct {
	path string
	done func(err error)
}

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop removes files received on jobsChan until stopped
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Debug("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case job := <-w.jobsChan:
			err := os.Remove(job.path)
			if errors.Is(err, os.ErrNotExist) {
				// Removed concurrently, e.g. by the delete endpoint.
				err = nil
			}

			if err != nil {
				w.logger.Error("Failed to remove expired file",
					slog.String("worker_name", workerName),
					slog.String("path", job.path),
					slog.String("error", err.Error()),
				)
			} else {
				w.logger.Debug("Expired file removed",
					slog.String("worker_name", workerName),
					slog.String("path", job.path),
				)
			}
			job.done(err)
		}
	}
}
