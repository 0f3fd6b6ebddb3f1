package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify/broker"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/usecase"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newUseCases,
		NewCampusFacade,
		newHTTPServer,
		newComputePool,
		newExpirySweeper,
		func(pool *worker.ComputePool) usecase.Executor { return pool },
	),
	fx.Invoke(registerLifecycle),
)

type useCaseParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Orders    *usecase.OrderUseCase
	Tokens    *usecase.TokenRegistry
	Delays    *usecase.DelayMonitor
	Protein   *usecase.ProteinUseCase
	Spending  *usecase.SpendingUseCase
	Analytics *usecase.AnalyticsUseCase
	Menu      *usecase.MenuUseCase
}

func newUseCases(p useCaseParams) UseCases {
	return UseCases{
		Auth:      p.Auth,
		Orders:    p.Orders,
		Tokens:    p.Tokens,
		Delays:    p.Delays,
		Protein:   p.Protein,
		Spending:  p.Spending,
		Analytics: p.Analytics,
		Menu:      p.Menu,
	}
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

func newComputePool(cfg *config.Config, logger *slog.Logger) *worker.ComputePool {
	return worker.NewComputePool(cfg.WorkerPoolSize, logger)
}

type sweeperParams struct {
	fx.In

	Facade *CampusFacade
	Config *config.Config
	Logger *slog.Logger
}

func newExpirySweeper(p sweeperParams) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(p.Facade, worker.SweepOptions{
		Interval:  p.Config.SweepInterval,
		BatchSize: p.Config.SweepBatchSize,
		Workers:   p.Config.WorkerPoolSize,
		Retention: p.Config.OrderRetention,
	}, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.ExpirySweeper
	Pool       *worker.ComputePool
	Hub        *notify.Hub
	Relay      *broker.Relay `optional:"true"`
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting campus bites", slog.String("addr", p.Server.Addr))
			p.Pool.Start(ctx)
			if p.Relay != nil {
				if err := p.Relay.Start(ctx); err != nil {
					p.Pool.Stop()
					return err
				}
			}
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			var errs []error
			if p.Relay != nil {
				if err := p.Relay.Stop(shutdownCtx); err != nil {
					errs = append(errs, err)
				}
			}
			// Closing the hub ends open event streams so Shutdown does not wait on them.
			p.Hub.Close()
			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
			p.Pool.Stop()
			if len(errs) > 0 {
				return errors.Join(errs...)
			}
			p.Logger.Info("campus bites stopped")
			return nil
		},
	})
}
