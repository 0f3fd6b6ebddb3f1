package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[user.Login]; exists {
		return domainErrors.ErrAlreadyExists
	}
	user.CreatedAt = time.Now()
	stored := *user
	s.Users[user.Login] = &stored
	s.ByID[user.UserID] = &stored
	return nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderStore is an in-memory order repository with the same compare-and-swap
// semantics as the PostgreSQL one.
type OrderStore struct {
	mu       sync.Mutex
	orders   map[string]model.Order
	Bills    []model.Bill
	Spending map[string]float64

	// CreateErrs are returned by successive Create calls before falling through.
	CreateErrs []error
	// TokensInUse marks tokens as taken regardless of stored orders.
	TokensInUse map[int]bool
	Err         error
}

// NewOrderStore creates an empty store.
func NewOrderStore(orders ...model.Order) *OrderStore {
	s := &OrderStore{
		orders:   make(map[string]model.Order),
		Spending: make(map[string]float64),
	}
	for _, o := range orders {
		s.orders[o.OrderID] = o
	}
	return s
}

// Put stores order as is.
func (s *OrderStore) Put(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = o
}

// Snapshot returns a copy of the stored order.
func (s *OrderStore) Snapshot(orderID string) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	return o, ok
}

func (s *OrderStore) Create(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if len(s.CreateErrs) > 0 {
		err := s.CreateErrs[0]
		s.CreateErrs = s.CreateErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, exists := s.orders[order.OrderID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	for _, o := range s.orders {
		if o.TokenNumber == order.TokenNumber && !o.Status.IsTerminal() {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.orders[order.OrderID] = *order
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

func (s *OrderStore) GetByToken(ctx context.Context, token int) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var matches []model.Order
	for _, o := range s.orders {
		if o.TokenNumber == token {
			matches = append(matches, o)
		}
	}
	if len(matches) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		ti, tj := matches[i].Status.IsTerminal(), matches[j].Status.IsTerminal()
		if ti != tj {
			return !ti
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return &matches[0], nil
}

func (s *OrderStore) TokenInUse(ctx context.Context, token int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if s.TokensInUse[token] {
		return true, nil
	}
	for _, o := range s.orders {
		if o.TokenNumber == token && !o.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (s *OrderStore) ListByStudent(ctx context.Context, studentID string) ([]model.Order, error) {
	return s.filter(func(o model.Order) bool { return o.StudentID == studentID }, true)
}

func (s *OrderStore) ListByCanteen(ctx context.Context, canteenID string, statuses []model.OrderStatus) ([]model.Order, error) {
	return s.filter(func(o model.Order) bool {
		if o.CanteenID != canteenID {
			return false
		}
		for _, st := range statuses {
			if o.Status == st {
				return true
			}
		}
		return false
	}, false)
}

func (s *OrderStore) CompareAndSetStatus(ctx context.Context, orderID string, expected, next model.OrderStatus, at time.Time) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != expected {
		return nil, domainErrors.ErrStatusConflict
	}
	o.Status = next
	o.UpdatedAt = at
	s.orders[orderID] = o
	return &o, nil
}

func (s *OrderStore) ConfirmPayment(ctx context.Context, orderID, paymentID string, bill *model.Bill, at time.Time) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != model.OrderStatusPendingPayment {
		return nil, domainErrors.ErrStatusConflict
	}
	o.Status = model.OrderStatusRequested
	o.PaymentID = &paymentID
	o.UpdatedAt = at
	s.orders[orderID] = o
	s.Bills = append(s.Bills, *bill)
	if s.Spending == nil {
		s.Spending = make(map[string]float64)
	}
	s.Spending[bill.StudentID] += bill.Amount
	return &o, nil
}

func (s *OrderStore) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.Order, error) {
	orders, err := s.filter(func(o model.Order) bool {
		return o.Status == model.OrderStatusPendingPayment && o.ExpiresAt.Before(now)
	}, false)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *OrderStore) PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var purged int64
	for id, o := range s.orders {
		if o.CreatedAt.Before(cutoff) {
			delete(s.orders, id)
			purged++
		}
	}
	return purged, nil
}

func (s *OrderStore) filter(keep func(model.Order) bool, newestFirst bool) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, o := range s.orders {
		if keep(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// MenuRepositoryStub keeps the catalog in memory.
type MenuRepositoryStub struct {
	Items       []model.MenuItem
	CanteenList []model.Canteen
	Err         error
	Calls       int
}

// ListAvailable filters Items by canteen unless canteenID is empty.
func (s *MenuRepositoryStub) ListAvailable(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.MenuItem
	for _, it := range s.Items {
		if canteenID == "" || it.CanteenID == canteenID {
			result = append(result, it)
		}
	}
	return result, nil
}

func (s *MenuRepositoryStub) ListByCanteen(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.MenuItem
	for _, it := range s.Items {
		if it.CanteenID == canteenID {
			result = append(result, it)
		}
	}
	return result, nil
}

func (s *MenuRepositoryStub) Get(ctx context.Context, itemID string) (*model.MenuItem, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	for _, it := range s.Items {
		if it.ItemID == itemID {
			item := it
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) Create(ctx context.Context, item *model.MenuItem) error {
	s.Calls++
	if s.Err != nil {
		return s.Err
	}
	for _, it := range s.Items {
		if it.ItemID == item.ItemID {
			return domainErrors.ErrAlreadyExists
		}
	}
	s.Items = append(s.Items, *item)
	return nil
}

func (s *MenuRepositoryStub) Update(ctx context.Context, itemID string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Items {
		if s.Items[i].ItemID != itemID {
			continue
		}
		if update.Price != nil {
			s.Items[i].Price = *update.Price
		}
		if update.StockQty != nil {
			s.Items[i].StockQty = *update.StockQty
		}
		if update.Available != nil {
			s.Items[i].Available = *update.Available
		}
		item := s.Items[i]
		return &item, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) Canteens(ctx context.Context) ([]model.Canteen, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.CanteenList, nil
}

// BillRepositoryStub customizes bill listing.
type BillRepositoryStub struct {
	ListFn func(context.Context, string) ([]model.Bill, error)
}

func (s BillRepositoryStub) ListByStudent(ctx context.Context, studentID string) ([]model.Bill, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, studentID)
	}
	return nil, nil
}

// SpendingRepositoryStub customizes spending summaries.
type SpendingRepositoryStub struct {
	SummaryFn func(context.Context, string) (*model.SpendingSummary, error)
}

func (s SpendingRepositoryStub) Summary(ctx context.Context, studentID string) (*model.SpendingSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, studentID)
	}
	return &model.SpendingSummary{StudentID: studentID}, nil
}

// AnalyticsRepositoryStub customizes management analytics.
type AnalyticsRepositoryStub struct {
	RevenueFn  func(context.Context, string) (*model.RevenueSummary, error)
	TopItemsFn func(context.Context, string, int) ([]model.ItemSales, error)
}

func (s AnalyticsRepositoryStub) Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
	if s.RevenueFn != nil {
		return s.RevenueFn(ctx, canteenID)
	}
	return &model.RevenueSummary{}, nil
}

func (s AnalyticsRepositoryStub) TopItems(ctx context.Context, canteenID string, limit int) ([]model.ItemSales, error) {
	if s.TopItemsFn != nil {
		return s.TopItemsFn(ctx, canteenID, limit)
	}
	return nil, nil
}
