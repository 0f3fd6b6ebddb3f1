package handlers

import (
	"context"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterStudent(ctx context.Context, rollNumber, name, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
	Me(ctx context.Context, actor model.Actor) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, studentID, canteenID string, items []model.OrderItem, total float64) (*model.Order, error)
	ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, actor model.Actor) (*model.Order, error)
	Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error)
	AllowedNext(status model.OrderStatus) []model.OrderStatus
	StudentOrders(ctx context.Context, studentID string) ([]model.Order, error)
	SetStatus(ctx context.Context, orderID string, status model.OrderStatus, actor model.Actor) (*model.Order, error)
	PendingOrders(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error)
	PriorityOrders(ctx context.Context, canteenID string, threshold time.Duration, actor model.Actor) ([]model.Order, error)
	ResolveToken(ctx context.Context, token int, actor model.Actor) (*model.Order, error)
}

// MenuFacade serves the catalog and staff edits to it.
type MenuFacade interface {
	Canteens(ctx context.Context) ([]model.Canteen, error)
	Menu(ctx context.Context, canteenID string) ([]model.MenuItem, error)
	MenuItem(ctx context.Context, itemID string) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item model.MenuItem, actor model.Actor) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, itemID string, update model.MenuItemUpdate, actor model.Actor) (*model.MenuItem, error)
}

// FitnessFacade plans protein targeted meals.
type FitnessFacade interface {
	PlanProtein(ctx context.Context, target int, excluded []string, canteenID string) ([]model.MenuItem, int, error)
}

// SpendingFacade exposes a student's payment history.
type SpendingFacade interface {
	Spending(ctx context.Context, studentID string) (*model.SpendingSummary, error)
	Bills(ctx context.Context, studentID string) ([]model.Bill, error)
}

// AnalyticsFacade exposes management reports.
type AnalyticsFacade interface {
	Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error)
	TopItems(ctx context.Context, canteenID string) ([]model.ItemSales, error)
}

// StreamFacade hands out live order event subscriptions.
type StreamFacade interface {
	Subscribe(ch notify.Channel, subscriberID string) *notify.Subscription
}

// CampusFacade aggregates the full set of operations used across handlers.
type CampusFacade interface {
	AuthFacade
	OrderFacade
	MenuFacade
	FitnessFacade
	SpendingFacade
	AnalyticsFacade
	StreamFacade
}
