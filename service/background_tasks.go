package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// BackgroundTasks runs fire-and-forget work detached from the caller's
// cancellation. Failures are logged and handed to onError, never returned.
type BackgroundTasks struct {
	timeout time.Duration
	onError func(name string, err error)
	wg      sync.WaitGroup
}

func NewBackgroundTasks(timeout time.Duration, onError func(name string, err error)) *BackgroundTasks {
	return &BackgroundTasks{timeout: timeout, onError: onError}
}

// Go starts fn with a context that keeps ctx's values but not its deadline
// or cancellation.
func (b *BackgroundTasks) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		taskCtx := detached
		if b.timeout > 0 {
			var cancel context.CancelFunc
			taskCtx, cancel = context.WithTimeout(detached, b.timeout)
			defer cancel()
		}
		if err := fn(taskCtx); err != nil {
			log.Printf("[BackgroundTasks] %s failed: %v", name, err)
			if b.onError != nil {
				b.onError(name, err)
			}
		}
	}()
}

// Wait blocks until every started task has finished.
func (b *BackgroundTasks) Wait() {
	b.wg.Wait()
}
