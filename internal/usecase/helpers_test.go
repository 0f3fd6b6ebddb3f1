package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	testhelpers "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/test"
)

var baseTime = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		PaymentWindow:     10 * time.Minute,
		PriorityThreshold: 15 * time.Minute,
		TokenMaxAttempts:  5,
		MaxProteinTarget:  2000,
	}
}

type orderFixture struct {
	store   *testhelpers.OrderStore
	events  *testhelpers.EmitterRecorder
	tokens  *TokenRegistry
	useCase *OrderUseCase
}

func newOrderFixture(policy model.TransitionPolicy, orders ...model.Order) *orderFixture {
	store := testhelpers.NewOrderStore(orders...)
	events := &testhelpers.EmitterRecorder{}
	cfg := testConfig()
	tokens := NewTokenRegistry(store, cfg)
	f := &orderFixture{store: store, events: events, tokens: tokens}
	f.useCase = NewOrderUseCase(store, tokens, testhelpers.VerifierStub{}, events, policy, cfg, discardLogger())
	f.useCase.now = func() time.Time { return baseTime }
	return f
}

func pendingOrder(id string) model.Order {
	return model.Order{
		OrderID:     id,
		StudentID:   "student-1",
		CanteenID:   "canteen-1",
		Items:       []model.OrderItem{{ItemID: "item-1", ItemName: "Dosa", Quantity: 2, PriceAtOrder: 40}},
		TokenNumber: 1234567,
		Status:      model.OrderStatusPendingPayment,
		TotalAmount: 80,
		CreatedAt:   baseTime.Add(-time.Minute),
		UpdatedAt:   baseTime.Add(-time.Minute),
		ExpiresAt:   baseTime.Add(9 * time.Minute),
	}
}

func withStatus(o model.Order, s model.OrderStatus) model.Order {
	o.Status = s
	return o
}

var (
	crewActor       = model.Actor{UserID: "crew-1", Role: model.RoleCrew, CanteenID: "canteen-1"}
	otherCrewActor  = model.Actor{UserID: "crew-2", Role: model.RoleCrew, CanteenID: "canteen-2"}
	managerActor    = model.Actor{UserID: "mgr-1", Role: model.RoleManagement}
	studentActor    = model.Actor{UserID: "student-1", Role: model.RoleStudent}
	strangerStudent = model.Actor{UserID: "student-9", Role: model.RoleStudent}
)
