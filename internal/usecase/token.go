package usecase

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

// Pickup tokens are seven digit numbers.
const (
	MinToken = 1000000
	MaxToken = 9999999
)

const defaultTokenAttempts = 5

// TokenRegistry issues pickup tokens and resolves them back to orders.
type TokenRegistry struct {
	orders   repository.OrderRepository
	attempts int
	draw     func() int
}

// NewTokenRegistry constructs TokenRegistry.
func NewTokenRegistry(orders repository.OrderRepository, cfg *config.Config) *TokenRegistry {
	attempts := cfg.TokenMaxAttempts
	if attempts <= 0 {
		attempts = defaultTokenAttempts
	}
	return &TokenRegistry{
		orders:   orders,
		attempts: attempts,
		draw:     func() int { return MinToken + rand.IntN(MaxToken-MinToken+1) },
	}
}

// Generate draws tokens until one is not held by an active order.
func (r *TokenRegistry) Generate(ctx context.Context) (int, error) {
	for i := 0; i < r.attempts; i++ {
		token := r.draw()
		inUse, err := r.orders.TokenInUse(ctx, token)
		if err != nil {
			return 0, err
		}
		if !inUse {
			return token, nil
		}
	}
	return 0, domainErrors.ErrTokenUnavailable
}

// Resolve returns the order holding token. Only crew of the order's canteen may resolve it.
func (r *TokenRegistry) Resolve(ctx context.Context, token int, actor model.Actor) (*model.Order, error) {
	if actor.Role != model.RoleCrew || actor.CanteenID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	if token < MinToken || token > MaxToken {
		return nil, domainErrors.ErrNotFound
	}

	order, err := r.orders.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if order.CanteenID != actor.CanteenID {
		return nil, domainErrors.ErrUnauthorized
	}
	return order, nil
}
