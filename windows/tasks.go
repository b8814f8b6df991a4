package windows

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

const defaultTaskLimit = 8

// Tasks runs background work off the event path. Go never blocks the caller;
// at most limit tasks execute at once and the rest wait their turn in their
// own goroutine.
type Tasks struct {
	ctx    context.Context
	sem    *semaphore.Weighted
	wg     sync.WaitGroup
	logger *slog.Logger
}

func NewTasks(ctx context.Context, limit int64, logger *slog.Logger) *Tasks {
	if limit <= 0 {
		limit = defaultTaskLimit
	}
	return &Tasks{
		ctx:    ctx,
		sem:    semaphore.NewWeighted(limit),
		logger: logger,
	}
}

func (t *Tasks) Go(name string, fn func(ctx context.Context) error) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.sem.Acquire(t.ctx, 1); err != nil {
			t.logger.Warn("task dropped", "task", name, "error", err)
			return
		}
		defer t.sem.Release(1)

		if err := fn(t.ctx); err != nil {
			t.logger.Error("task failed", "task", name, "error", err)
		}
	}()
}

// Wait blocks until every spawned task has returned.
func (t *Tasks) Wait() {
	t.wg.Wait()
}
