package menucache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

const (
	availableOp = "menu"
	catalogOp   = "catalog"
	allScope    = "all"
)

// CachedMenu serves catalog reads from the cache and falls back to the
// repository. Writes go straight to the repository and drop the keys of the
// affected canteen.
type CachedMenu struct {
	repo   repository.MenuRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedMenu wraps repo with cache.
func NewCachedMenu(repo repository.MenuRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedMenu {
	return &CachedMenu{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// ListAvailable returns the available catalog for canteenID, or every canteen when empty.
func (m *CachedMenu) ListAvailable(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	scope := canteenID
	if scope == "" {
		scope = allScope
	}
	return m.readThrough(ctx, m.cache.GenerateKey(availableOp, scope), func() ([]model.MenuItem, error) {
		return m.repo.ListAvailable(ctx, canteenID)
	})
}

// ListByCanteen returns the canteen's full menu.
func (m *CachedMenu) ListByCanteen(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	return m.readThrough(ctx, m.cache.GenerateKey(catalogOp, canteenID), func() ([]model.MenuItem, error) {
		return m.repo.ListByCanteen(ctx, canteenID)
	})
}

func (m *CachedMenu) Get(ctx context.Context, itemID string) (*model.MenuItem, error) {
	return m.repo.Get(ctx, itemID)
}

func (m *CachedMenu) Canteens(ctx context.Context) ([]model.Canteen, error) {
	return m.repo.Canteens(ctx)
}

func (m *CachedMenu) Create(ctx context.Context, item *model.MenuItem) error {
	if err := m.repo.Create(ctx, item); err != nil {
		return err
	}
	m.invalidate(ctx, item.CanteenID)
	return nil
}

func (m *CachedMenu) Update(ctx context.Context, itemID string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	item, err := m.repo.Update(ctx, itemID, update)
	if err != nil {
		return nil, err
	}
	m.invalidate(ctx, item.CanteenID)
	return item, nil
}

func (m *CachedMenu) readThrough(ctx context.Context, key string, load func() ([]model.MenuItem, error)) ([]model.MenuItem, error) {
	cached, err := m.cache.Get(ctx, key)
	if err != nil {
		m.logger.Warn("menu cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if cached != "" {
		var items []model.MenuItem
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
		m.logger.Warn("menu cache entry is corrupt", slog.String("key", key))
	}

	items, err := load()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return items, nil
	}
	if err := m.cache.Set(ctx, key, string(payload), m.ttl); err != nil {
		m.logger.Warn("menu cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return items, nil
}

// invalidate drops every key that may list an item of canteenID. A failure
// leaves stale entries until their ttl runs out.
func (m *CachedMenu) invalidate(ctx context.Context, canteenID string) {
	keys := []string{
		m.cache.GenerateKey(availableOp, canteenID),
		m.cache.GenerateKey(availableOp, allScope),
		m.cache.GenerateKey(catalogOp, canteenID),
	}
	if err := m.cache.Delete(ctx, keys...); err != nil {
		m.logger.Warn("menu cache invalidation failed", slog.String("canteen_id", canteenID), slog.String("error", err.Error()))
	}
}
