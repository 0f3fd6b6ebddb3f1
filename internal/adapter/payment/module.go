package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
)

// Module exposes payment verifier implementation to fx graph.
var Module = fx.Provide(newVerifier)

type verifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newVerifier(p verifierParams) (Verifier, error) {
	return NewHMACVerifier(p.Config.PaymentSecret, p.Logger)
}
