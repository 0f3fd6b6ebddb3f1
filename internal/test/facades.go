package test

import (
	"context"
	"sync"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn   func(context.Context, string, string, []model.OrderItem, float64) (*model.Order, error)
	ConfirmFn  func(context.Context, string, string, string, model.Actor) (*model.Order, error)
	OrderFn    func(context.Context, string, model.Actor) (*model.Order, error)
	NextFn     func(model.OrderStatus) []model.OrderStatus
	StudentFn  func(context.Context, string) ([]model.Order, error)
	SetFn      func(context.Context, string, model.OrderStatus, model.Actor) (*model.Order, error)
	PendingFn  func(context.Context, string, model.Actor) ([]model.Order, error)
	PriorityFn func(context.Context, string, time.Duration, model.Actor) ([]model.Order, error)
	ResolveFn  func(context.Context, int, model.Actor) (*model.Order, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, studentID, canteenID string, items []model.OrderItem, total float64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, studentID, canteenID, items, total)
	}
	return &model.Order{
		OrderID:     "order_1",
		StudentID:   studentID,
		CanteenID:   canteenID,
		Items:       items,
		TokenNumber: 1234567,
		Status:      model.OrderStatusPendingPayment,
		TotalAmount: total,
		ExpiresAt:   time.Unix(600, 0).UTC(),
	}, nil
}

func (s OrderFacadeStub) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, actor model.Actor) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, orderID, paymentID, signature, actor)
	}
	return &model.Order{OrderID: orderID, Status: model.OrderStatusRequested}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, actor)
	}
	return &model.Order{OrderID: orderID, StudentID: actor.UserID, CanteenID: "canteen-1", Status: model.OrderStatusPreparing}, nil
}

// AllowedNext follows the strict adjacency table unless overridden.
func (s OrderFacadeStub) AllowedNext(status model.OrderStatus) []model.OrderStatus {
	if s.NextFn != nil {
		return s.NextFn(status)
	}
	return model.NextStatuses(status)
}

func (s OrderFacadeStub) StudentOrders(ctx context.Context, studentID string) ([]model.Order, error) {
	if s.StudentFn != nil {
		return s.StudentFn(ctx, studentID)
	}
	return []model.Order{{OrderID: "order_1", StudentID: studentID, Status: model.OrderStatusRequested}}, nil
}

func (s OrderFacadeStub) SetStatus(ctx context.Context, orderID string, status model.OrderStatus, actor model.Actor) (*model.Order, error) {
	if s.SetFn != nil {
		return s.SetFn(ctx, orderID, status, actor)
	}
	return &model.Order{OrderID: orderID, Status: status}, nil
}

func (s OrderFacadeStub) PendingOrders(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, canteenID, actor)
	}
	return []model.Order{{OrderID: "order_1", CanteenID: canteenID, Status: model.OrderStatusPreparing}}, nil
}

func (s OrderFacadeStub) PriorityOrders(ctx context.Context, canteenID string, threshold time.Duration, actor model.Actor) ([]model.Order, error) {
	if s.PriorityFn != nil {
		return s.PriorityFn(ctx, canteenID, threshold, actor)
	}
	return nil, nil
}

func (s OrderFacadeStub) ResolveToken(ctx context.Context, token int, actor model.Actor) (*model.Order, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token, actor)
	}
	return &model.Order{OrderID: "order_1", CanteenID: actor.CanteenID, TokenNumber: token, Status: model.OrderStatusReady}, nil
}

// MenuFacadeStub simulates catalog reads and edits.
type MenuFacadeStub struct {
	CanteensFn   func(context.Context) ([]model.Canteen, error)
	MenuFn       func(context.Context, string) ([]model.MenuItem, error)
	ItemFn       func(context.Context, string) (*model.MenuItem, error)
	CreateItemFn func(context.Context, model.MenuItem, model.Actor) (*model.MenuItem, error)
	UpdateItemFn func(context.Context, string, model.MenuItemUpdate, model.Actor) (*model.MenuItem, error)
}

func (s MenuFacadeStub) Canteens(ctx context.Context) ([]model.Canteen, error) {
	if s.CanteensFn != nil {
		return s.CanteensFn(ctx)
	}
	return []model.Canteen{{CanteenID: "canteen-1", Name: "Main Block"}}, nil
}

func (s MenuFacadeStub) Menu(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, canteenID)
	}
	return []model.MenuItem{{ItemID: "item-1", Name: "Egg Bowl", CanteenID: canteenID, Price: 60, Available: true}}, nil
}

func (s MenuFacadeStub) MenuItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	if s.ItemFn != nil {
		return s.ItemFn(ctx, itemID)
	}
	return &model.MenuItem{ItemID: itemID, Name: "Egg Bowl", CanteenID: "canteen-1", Price: 60, Available: true}, nil
}

func (s MenuFacadeStub) CreateMenuItem(ctx context.Context, item model.MenuItem, actor model.Actor) (*model.MenuItem, error) {
	if s.CreateItemFn != nil {
		return s.CreateItemFn(ctx, item, actor)
	}
	item.ItemID = "item_new"
	item.Available = true
	return &item, nil
}

func (s MenuFacadeStub) UpdateMenuItem(ctx context.Context, itemID string, update model.MenuItemUpdate, actor model.Actor) (*model.MenuItem, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, itemID, update, actor)
	}
	item := model.MenuItem{ItemID: itemID, CanteenID: "canteen-1", Price: 60, Available: true}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.StockQty != nil {
		item.StockQty = *update.StockQty
	}
	if update.Available != nil {
		item.Available = *update.Available
	}
	return &item, nil
}

// FitnessFacadeStub simulates the protein planner.
type FitnessFacadeStub struct {
	PlanFn func(context.Context, int, []string, string) ([]model.MenuItem, int, error)
}

func (s FitnessFacadeStub) PlanProtein(ctx context.Context, target int, excluded []string, canteenID string) ([]model.MenuItem, int, error) {
	if s.PlanFn != nil {
		return s.PlanFn(ctx, target, excluded, canteenID)
	}
	return []model.MenuItem{{ItemID: "item-1", Name: "Paneer", Protein: 20}}, 20, nil
}

// SpendingFacadeStub simulates spending queries.
type SpendingFacadeStub struct {
	SpendingFn func(context.Context, string) (*model.SpendingSummary, error)
	BillsFn    func(context.Context, string) ([]model.Bill, error)
}

func (s SpendingFacadeStub) Spending(ctx context.Context, studentID string) (*model.SpendingSummary, error) {
	if s.SpendingFn != nil {
		return s.SpendingFn(ctx, studentID)
	}
	return &model.SpendingSummary{StudentID: studentID, DailyTotal: 10, WeeklyTotal: 20, MonthlyTotal: 30}, nil
}

func (s SpendingFacadeStub) Bills(ctx context.Context, studentID string) ([]model.Bill, error) {
	if s.BillsFn != nil {
		return s.BillsFn(ctx, studentID)
	}
	return []model.Bill{{BillID: "bill_1", StudentID: studentID, Amount: 10}}, nil
}

// AnalyticsFacadeStub simulates management analytics.
type AnalyticsFacadeStub struct {
	RevenueFn  func(context.Context, string) (*model.RevenueSummary, error)
	TopItemsFn func(context.Context, string) ([]model.ItemSales, error)
}

func (s AnalyticsFacadeStub) Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
	if s.RevenueFn != nil {
		return s.RevenueFn(ctx, canteenID)
	}
	return &model.RevenueSummary{TotalRevenue: 100, TotalOrders: 4, AverageOrderValue: 25}, nil
}

func (s AnalyticsFacadeStub) TopItems(ctx context.Context, canteenID string) ([]model.ItemSales, error) {
	if s.TopItemsFn != nil {
		return s.TopItemsFn(ctx, canteenID)
	}
	return []model.ItemSales{{ItemID: "item-1", ItemName: "Dosa", Quantity: 3, Revenue: 90}}, nil
}

// StreamFacadeStub hands out subscriptions of an embedded hub.
type StreamFacadeStub struct {
	Hub *notify.Hub
}

func (s StreamFacadeStub) Subscribe(ch notify.Channel, subscriberID string) *notify.Subscription {
	return s.Hub.Subscribe(ch, subscriberID)
}

// CampusFacadeStub aggregates facade dependencies for HTTP layer tests.
type CampusFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	MenuFacadeStub
	FitnessFacadeStub
	SpendingFacadeStub
	AnalyticsFacadeStub
	StreamFacadeStub
}

// ExpiryFacadeStub mimics the sweeper's view of the application.
type ExpiryFacadeStub struct {
	Batches   [][]model.Order
	CancelFn  func(context.Context, model.Order) error
	PurgeFn   func(context.Context, time.Duration) (int64, error)
	Cancelled []string
	Purges    int

	mu    sync.Mutex
	calls int
}

func (s *ExpiryFacadeStub) ExpiredOrders(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls < len(s.Batches) {
		batch := s.Batches[s.calls]
		s.calls++
		return batch, nil
	}
	return nil, nil
}

func (s *ExpiryFacadeStub) CancelExpired(ctx context.Context, order model.Order) error {
	if s.CancelFn != nil {
		if err := s.CancelFn(ctx, order); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancelled = append(s.Cancelled, order.OrderID)
	return nil
}

func (s *ExpiryFacadeStub) PurgeOrders(ctx context.Context, retention time.Duration) (int64, error) {
	s.mu.Lock()
	s.Purges++
	s.mu.Unlock()
	if s.PurgeFn != nil {
		return s.PurgeFn(ctx, retention)
	}
	return 0, nil
}

// CancelledIDs returns a copy of the cancelled order ids.
func (s *ExpiryFacadeStub) CancelledIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Cancelled))
	copy(out, s.Cancelled)
	return out
}

// PurgeCount reports how many purges ran.
func (s *ExpiryFacadeStub) PurgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Purges
}
