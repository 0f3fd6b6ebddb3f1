package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrPoolStopped is returned by Do when the pool is not running.
var ErrPoolStopped = errors.New("compute pool stopped")

type job struct {
	fn   func()
	done chan error
}

// ComputePool runs CPU-bound functions on a fixed set of goroutines so request
// handlers never execute them inline.
type ComputePool struct {
	workers int
	logger  *slog.Logger

	jobs   chan job
	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
	quit   <-chan struct{}
}

// NewComputePool constructs a pool of workers goroutines.
func NewComputePool(workers int, logger *slog.Logger) *ComputePool {
	if workers <= 0 {
		workers = 1
	}
	return &ComputePool{
		workers: workers,
		logger:  logger,
		jobs:    make(chan job, workers),
	}
}

// Start launches the workers.
func (p *ComputePool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.quit = runCtx.Done()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Stop waits for all workers to finish. Pending Do calls return ErrPoolStopped.
func (p *ComputePool) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Do runs fn on a pool goroutine and waits for it to return.
func (p *ComputePool) Do(ctx context.Context, fn func()) error {
	p.mu.Lock()
	quit := p.quit
	running := p.cancel != nil
	p.mu.Unlock()
	if !running {
		return ErrPoolStopped
	}

	j := job{fn: fn, done: make(chan error, 1)}
	select {
	case p.jobs <- j:
	case <-quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ComputePool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			j.done <- p.run(j.fn)
		}
	}
}

func (p *ComputePool) run(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("compute job panicked", slog.Any("panic", r))
			err = fmt.Errorf("compute job panicked: %v", r)
		}
	}()
	fn()
	return nil
}
