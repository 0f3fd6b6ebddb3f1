package auth

import (
	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
)

// Module provides the password hasher and the session token strategy.
var Module = fx.Options(
	fx.Provide(newPasswordHasher, newTokenStrategy),
)

type authParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p authParams) PasswordHasher {
	return NewBcryptHasher(p.Config.PasswordCost)
}

func newTokenStrategy(p authParams) Strategy {
	return NewHMACStrategy(p.Config.JWTSecret, Options{TTL: p.Config.SessionTTL})
}
