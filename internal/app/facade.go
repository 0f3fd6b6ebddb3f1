package app

import (
	"context"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/adapter/payment"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/usecase"
)

// UseCases groups the application services behind the facade.
type UseCases struct {
	Auth      *usecase.AuthUseCase
	Orders    *usecase.OrderUseCase
	Tokens    *usecase.TokenRegistry
	Delays    *usecase.DelayMonitor
	Protein   *usecase.ProteinUseCase
	Spending  *usecase.SpendingUseCase
	Analytics *usecase.AnalyticsUseCase
	Menu      *usecase.MenuUseCase
}

type CampusFacade struct {
	uc  UseCases
	hub *notify.Hub
	now func() time.Time
}

func NewCampusFacade(uc UseCases, hub *notify.Hub) *CampusFacade {
	return &CampusFacade{uc: uc, hub: hub, now: time.Now}
}

func (f *CampusFacade) RegisterStudent(ctx context.Context, rollNumber, name, password string) (string, error) {
	_, token, err := f.uc.Auth.RegisterStudent(ctx, rollNumber, name, password)
	return token, err
}

func (f *CampusFacade) Login(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.uc.Auth.Login(ctx, login, password)
	return token, err
}

func (f *CampusFacade) ParseToken(token string) (model.Actor, error) {
	return f.uc.Auth.ParseToken(token)
}

func (f *CampusFacade) Me(ctx context.Context, actor model.Actor) (*model.User, error) {
	return f.uc.Auth.GetByID(ctx, actor.UserID)
}

func (f *CampusFacade) CreateOrder(ctx context.Context, studentID, canteenID string, items []model.OrderItem, total float64) (*model.Order, error) {
	return f.uc.Orders.Create(ctx, usecase.CreateOrderInput{
		StudentID:   studentID,
		CanteenID:   canteenID,
		Items:       items,
		TotalAmount: total,
	})
}

func (f *CampusFacade) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, actor model.Actor) (*model.Order, error) {
	return f.uc.Orders.ConfirmPayment(ctx, orderID, payment.Reference{PaymentID: paymentID, Signature: signature}, actor)
}

func (f *CampusFacade) Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	return f.uc.Orders.Get(ctx, orderID, actor)
}

func (f *CampusFacade) AllowedNext(status model.OrderStatus) []model.OrderStatus {
	return f.uc.Orders.AllowedNext(status)
}

func (f *CampusFacade) StudentOrders(ctx context.Context, studentID string) ([]model.Order, error) {
	return f.uc.Orders.ListByStudent(ctx, studentID)
}

func (f *CampusFacade) SetStatus(ctx context.Context, orderID string, status model.OrderStatus, actor model.Actor) (*model.Order, error) {
	return f.uc.Orders.SetStatus(ctx, orderID, status, actor)
}

func (f *CampusFacade) PendingOrders(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error) {
	return f.uc.Orders.ActiveForCanteen(ctx, canteenID, actor)
}

func (f *CampusFacade) PriorityOrders(ctx context.Context, canteenID string, threshold time.Duration, actor model.Actor) ([]model.Order, error) {
	if err := usecase.AuthorizeCanteen(actor, canteenID); err != nil {
		return nil, err
	}
	return f.uc.Delays.PriorityOrders(ctx, canteenID, f.now(), threshold)
}

func (f *CampusFacade) ResolveToken(ctx context.Context, token int, actor model.Actor) (*model.Order, error) {
	return f.uc.Tokens.Resolve(ctx, token, actor)
}

func (f *CampusFacade) Canteens(ctx context.Context) ([]model.Canteen, error) {
	return f.uc.Menu.Canteens(ctx)
}

func (f *CampusFacade) Menu(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	return f.uc.Menu.Menu(ctx, canteenID)
}

func (f *CampusFacade) MenuItem(ctx context.Context, itemID string) (*model.MenuItem, error) {
	return f.uc.Menu.Item(ctx, itemID)
}

func (f *CampusFacade) CreateMenuItem(ctx context.Context, item model.MenuItem, actor model.Actor) (*model.MenuItem, error) {
	return f.uc.Menu.CreateItem(ctx, item, actor)
}

func (f *CampusFacade) UpdateMenuItem(ctx context.Context, itemID string, update model.MenuItemUpdate, actor model.Actor) (*model.MenuItem, error) {
	return f.uc.Menu.UpdateItem(ctx, itemID, update, actor)
}

func (f *CampusFacade) PlanProtein(ctx context.Context, target int, excluded []string, canteenID string) ([]model.MenuItem, int, error) {
	plan, err := f.uc.Protein.Optimize(ctx, usecase.ProteinRequest{
		TargetGrams:     target,
		ExcludedItemIDs: excluded,
		CanteenID:       canteenID,
	})
	if err != nil {
		return nil, 0, err
	}
	return plan.Selected, plan.AchievedGrams, nil
}

func (f *CampusFacade) Spending(ctx context.Context, studentID string) (*model.SpendingSummary, error) {
	return f.uc.Spending.Summary(ctx, studentID)
}

func (f *CampusFacade) Bills(ctx context.Context, studentID string) ([]model.Bill, error) {
	return f.uc.Spending.Bills(ctx, studentID)
}

func (f *CampusFacade) Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
	return f.uc.Analytics.Revenue(ctx, canteenID)
}

func (f *CampusFacade) TopItems(ctx context.Context, canteenID string) ([]model.ItemSales, error) {
	return f.uc.Analytics.TopItems(ctx, canteenID)
}

func (f *CampusFacade) Subscribe(ch notify.Channel, subscriberID string) *notify.Subscription {
	return f.hub.Subscribe(ch, subscriberID)
}

func (f *CampusFacade) ExpiredOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.uc.Orders.ExpiredOrders(ctx, limit)
}

func (f *CampusFacade) CancelExpired(ctx context.Context, order model.Order) error {
	_, err := f.uc.Orders.CancelExpired(ctx, order)
	return err
}

func (f *CampusFacade) PurgeOrders(ctx context.Context, retention time.Duration) (int64, error) {
	return f.uc.Orders.Purge(ctx, retention)
}
