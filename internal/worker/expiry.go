package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// ExpiryFacade exposes the subset of application functionality required by the sweeper.
type ExpiryFacade interface {
	ExpiredOrders(ctx context.Context, limit int) ([]model.Order, error)
	CancelExpired(ctx context.Context, order model.Order) error
	PurgeOrders(ctx context.Context, retention time.Duration) (int64, error)
}

// SweepOptions tunes the sweeper.
type SweepOptions struct {
	Interval  time.Duration
	BatchSize int
	Workers   int
	Retention time.Duration
}

// ExpirySweeper cancels unpaid orders past their deadline and purges old orders.
type ExpirySweeper struct {
	facade ExpiryFacade
	opts   SweepOptions
	logger *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirySweeper constructs ExpirySweeper.
func NewExpirySweeper(facade ExpiryFacade, opts SweepOptions, logger *slog.Logger) *ExpirySweeper {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &ExpirySweeper{facade: facade, opts: opts, logger: logger}
}

// Start launches the periodic sweep.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop waits for the running sweep to finish.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ExpirySweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and reports how many orders were cancelled.
func (s *ExpirySweeper) Sweep(ctx context.Context) int {
	orders, err := s.facade.ExpiredOrders(ctx, s.opts.BatchSize)
	if err != nil {
		s.logger.Error("fetch expired orders failed", slog.String("error", err.Error()))
		return 0
	}

	var cancelled atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for _, order := range orders {
		g.Go(func() error {
			if err := s.facade.CancelExpired(ctx, order); err != nil {
				if errors.Is(err, domainErrors.ErrStatusConflict) || errors.Is(err, domainErrors.ErrInvalidTransition) {
					s.logger.Debug("expired order changed before cancel", slog.String("order_id", order.OrderID))
					return nil
				}
				s.logger.Error("cancel expired order failed",
					slog.String("order_id", order.OrderID),
					slog.String("error", err.Error()),
				)
				return nil
			}
			cancelled.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	if s.opts.Retention > 0 && ctx.Err() == nil {
		purged, err := s.facade.PurgeOrders(ctx, s.opts.Retention)
		if err != nil {
			s.logger.Error("purge old orders failed", slog.String("error", err.Error()))
		} else if purged > 0 {
			s.logger.Info("purged old orders", slog.Int64("count", purged))
		}
	}
	return int(cancelled.Load())
}
