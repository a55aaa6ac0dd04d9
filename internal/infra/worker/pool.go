// Package worker runs notification tasks on an in-process goroutine pool.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"
)

// TaskHandler processes one task; an error is logged and the task is dropped.
type TaskHandler interface {
	HandleTask(ctx context.Context, task shared.NotificationTask) error
}

type Pool struct {
	handler TaskHandler
	workers int
	tasks   chan shared.NotificationTask

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started bool
}

func NewPool(handler TaskHandler, workers, buffer int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		handler: handler,
		workers: workers,
		tasks:   make(chan shared.NotificationTask, buffer),
	}
}

// Enqueue blocks while the buffer is full, until ctx is done.
func (p *Pool) Enqueue(ctx context.Context, task shared.NotificationTask) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errs.ErrQueueUnavailable
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return errs.Mark(ctx.Err(), errs.ErrQueueUnavailable)
	}
}

// Start launches the workers. Tasks run on a context detached from ctx's
// cancellation and cancelled by Stop.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(runCtx, i)
	}
	slog.Info("notification worker pool started", "workers", p.workers)
}

func (p *Pool) run(ctx context.Context, worker int) {
	defer p.wg.Done()
	for task := range p.tasks {
		if err := p.handler.HandleTask(ctx, task); err != nil {
			slog.Error("notification task failed",
				"worker", worker,
				"task_id", task.ID.String(),
				"recipient_id", task.RecipientID.String(),
				"error", err.Error())
		}
	}
}

// Stop refuses new tasks, drains the buffer and waits for the workers or ctx.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	started := p.started
	p.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
