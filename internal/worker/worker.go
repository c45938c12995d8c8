package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Config holds retention worker configuration
type Config struct {
	Logger        *slog.Logger
	Dirs          []string
	TTL           time.Duration
	SweepInterval time.Duration
	Concurrency   int
	WorkerID      string
}

// Worker deletes artifacts older than TTL from the configured directories
type Worker struct {
	logger        *slog.Logger
	dirs          []string
	ttl           time.Duration
	sweepInterval time.Duration
	concurrency   int
	workerID      string
	now           func() time.Time
	jobsChan      chan *removal
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	workerID := cfg.WorkerID
	if workerID == "" {
		workerID = "retention"
	}

	return &Worker{
		logger:        cfg.Logger,
		dirs:          cfg.Dirs,
		ttl:           cfg.TTL,
		sweepInterval: sweepInterval,
		concurrency:   concurrency,
		workerID:      workerID,
		now:           time.Now,
		jobsChan:      make(chan *removal),
		stopChan:      make(chan struct{}),
	}
}

// Start sweeps once immediately and then on every interval until ctx is
// canceled or Stop is called
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting retention worker",
		slog.Int("concurrency", w.concurrency),
		slog.Duration("ttl", w.ttl),
		slog.Duration("sweep_interval", w.sweepInterval),
		slog.Any("dirs", w.dirs),
	)

	w.spawnWorkerPool(ctx)

	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		if _, err := w.Sweep(ctx); err != nil {
			w.logger.Error("Retention sweep failed",
				slog.String("error", err.Error()),
			)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Worker context canceled, stopping...")
			return nil
		case <-w.stopChan:
			return nil
		case <-ticker.C:
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
