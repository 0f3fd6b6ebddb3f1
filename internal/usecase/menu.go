package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

// MenuUseCase serves the public catalog and staff edits to it.
type MenuUseCase struct {
	menu   repository.MenuRepository
	logger *slog.Logger
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository, logger *slog.Logger) *MenuUseCase {
	return &MenuUseCase{menu: menu, logger: logger}
}

// Canteens lists every canteen.
func (u *MenuUseCase) Canteens(ctx context.Context) ([]model.Canteen, error) {
	return u.menu.Canteens(ctx)
}

// Menu returns the full menu of canteenID, sold out items included.
func (u *MenuUseCase) Menu(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	return u.menu.ListByCanteen(ctx, canteenID)
}

// Item returns a single catalog entry.
func (u *MenuUseCase) Item(ctx context.Context, itemID string) (*model.MenuItem, error) {
	return u.menu.Get(ctx, itemID)
}

// CreateItem adds item to the catalog under a fresh id. Management only.
func (u *MenuUseCase) CreateItem(ctx context.Context, item model.MenuItem, actor model.Actor) (*model.MenuItem, error) {
	if actor.Role != model.RoleManagement {
		return nil, domainErrors.ErrUnauthorized
	}
	item.Name = strings.TrimSpace(item.Name)
	item.CanteenID = strings.TrimSpace(item.CanteenID)
	if item.Name == "" || item.CanteenID == "" || item.Price < 0 || item.Protein < 0 || item.StockQty < 0 {
		return nil, domainErrors.ErrInvalidMenuItem
	}

	item.ItemID = model.NewMenuItemID()
	item.Available = true
	if err := u.menu.Create(ctx, &item); err != nil {
		return nil, err
	}
	u.logger.Info("menu item created",
		slog.String("item_id", item.ItemID),
		slog.String("canteen_id", item.CanteenID),
		slog.String("actor", actor.UserID),
	)
	return &item, nil
}

// UpdateItem changes price, stock or availability. Crew may only edit their
// own canteen's items.
func (u *MenuUseCase) UpdateItem(ctx context.Context, itemID string, update model.MenuItemUpdate, actor model.Actor) (*model.MenuItem, error) {
	if !actor.Role.IsStaff() {
		return nil, domainErrors.ErrUnauthorized
	}
	if update.IsEmpty() {
		return nil, domainErrors.ErrInvalidMenuItem
	}
	if (update.Price != nil && *update.Price < 0) || (update.StockQty != nil && *update.StockQty < 0) {
		return nil, domainErrors.ErrInvalidMenuItem
	}

	current, err := u.menu.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeCanteen(actor, current.CanteenID); err != nil {
		return nil, err
	}

	updated, err := u.menu.Update(ctx, itemID, update)
	if err != nil {
		return nil, err
	}
	u.logger.Info("menu item updated",
		slog.String("item_id", itemID),
		slog.String("actor", actor.UserID),
	)
	return updated, nil
}
