package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the process-wide hub.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Invoke(registerLifecycle),
)

func newHub(logger *slog.Logger) *Hub {
	return NewHub(defaultBuffer, logger)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing notification hub", slog.Int64("dropped_events", hub.Dropped()))
			hub.Close()
			return nil
		},
	})
}
