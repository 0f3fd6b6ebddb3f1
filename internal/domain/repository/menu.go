package repository

import (
	"context"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// MenuRepository manages the catalog. Listings are ordered by item id.
type MenuRepository interface {
	// ListAvailable returns items on sale. An empty canteenID covers every canteen.
	ListAvailable(ctx context.Context, canteenID string) ([]model.MenuItem, error)
	// ListByCanteen returns the canteen's full menu including sold out items.
	ListByCanteen(ctx context.Context, canteenID string) ([]model.MenuItem, error)
	Get(ctx context.Context, itemID string) (*model.MenuItem, error)
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, itemID string, update model.MenuItemUpdate) (*model.MenuItem, error)
	Canteens(ctx context.Context) ([]model.Canteen, error)
}
