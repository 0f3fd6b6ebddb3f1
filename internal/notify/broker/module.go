package broker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

// Module provides the event emitter used by the order use cases. Without an
// AMQP URL events only reach subscribers of this process.
var Module = fx.Provide(
	newRelayFromConfig,
	provideEmitter,
)

type relayParams struct {
	fx.In

	Config *config.Config
	Hub    *notify.Hub
	Logger *slog.Logger
}

func newRelayFromConfig(p relayParams) (*Relay, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("broker relay disabled, using in-process notifications")
		return nil, nil
	}
	return Dial(p.Config.AMQPURL, p.Hub, p.Logger)
}

func provideEmitter(relay *Relay, hub *notify.Hub) notify.Emitter {
	if relay == nil {
		return hub
	}
	return relay
}
