package menucache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

// Module provides the menu cache and decorates the menu repository with it.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Decorate(decorateMenu),
	fx.Invoke(registerLifecycle),
)

type cacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("menu cache disabled")
		return NopCache{}
	}
	return NewRedisCache(p.Config.RedisAddress)
}

type decorateParams struct {
	fx.In

	Repo   repository.MenuRepository
	Cache  Cache
	Config *config.Config
	Logger *slog.Logger
}

func decorateMenu(p decorateParams) repository.MenuRepository {
	return NewCachedMenu(p.Repo, p.Cache, p.Config.MenuCacheTTL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, cache Cache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}
