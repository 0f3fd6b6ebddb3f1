package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/adapter/payment"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/notify"
)

const defaultPaymentWindow = 10 * time.Minute

// activeStatuses are the statuses a canteen dashboard works on.
var activeStatuses = []model.OrderStatus{
	model.OrderStatusRequested,
	model.OrderStatusPreparing,
	model.OrderStatusReady,
}

// OrderUseCase drives orders through their lifecycle and announces every change.
type OrderUseCase struct {
	orders   repository.OrderRepository
	tokens   *TokenRegistry
	verifier payment.Verifier
	events   notify.Emitter
	policy   model.TransitionPolicy
	window   time.Duration
	attempts int
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	tokens *TokenRegistry,
	verifier payment.Verifier,
	events notify.Emitter,
	policy model.TransitionPolicy,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderUseCase {
	window := cfg.PaymentWindow
	if window <= 0 {
		window = defaultPaymentWindow
	}
	attempts := cfg.TokenMaxAttempts
	if attempts <= 0 {
		attempts = defaultTokenAttempts
	}
	return &OrderUseCase{
		orders:   orders,
		tokens:   tokens,
		verifier: verifier,
		events:   events,
		policy:   policy,
		window:   window,
		attempts: attempts,
		logger:   logger,
		now:      time.Now,
	}
}

// Create stores a new unpaid order with a fresh pickup token.
func (u *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if err := ValidateOrderInput(in); err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, len(in.Items))
	copy(items, in.Items)

	// The unique index on active tokens can still reject a token that passed
	// the in-use check; such an insert is retried with a new token.
	for i := 0; i < u.attempts; i++ {
		token, err := u.tokens.Generate(ctx)
		if err != nil {
			return nil, err
		}

		now := u.now().UTC()
		order := &model.Order{
			OrderID:     model.NewOrderID(),
			StudentID:   in.StudentID,
			CanteenID:   in.CanteenID,
			Items:       items,
			TokenNumber: token,
			Status:      model.OrderStatusPendingPayment,
			TotalAmount: in.TotalAmount,
			CreatedAt:   now,
			UpdatedAt:   now,
			ExpiresAt:   now.Add(u.window),
		}

		err = u.orders.Create(ctx, order)
		if err == nil {
			u.logger.Info("order created",
				slog.String("order_id", order.OrderID),
				slog.String("canteen_id", order.CanteenID),
				slog.Int("token", order.TokenNumber),
			)
			return order, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("create order: %w", err)
		}
	}
	return nil, domainErrors.ErrTokenUnavailable
}

// ConfirmPayment verifies ref and moves the order from PENDING_PAYMENT to
// REQUESTED, writing the bill and spending update atomically. Only the
// student who placed the order may pay for it.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, orderID string, ref payment.Reference, actor model.Actor) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleStudent || order.StudentID != actor.UserID {
		return nil, domainErrors.ErrUnauthorized
	}

	ok, err := u.verifier.Verify(ctx, orderID, ref)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !ok {
		u.logger.Warn("payment verification failed", slog.String("order_id", orderID))
		return nil, domainErrors.ErrPaymentVerificationFailed
	}

	if order.Status != model.OrderStatusPendingPayment {
		return nil, domainErrors.ErrInvalidTransition
	}

	now := u.now().UTC()
	bill := &model.Bill{
		BillID:    model.NewBillID(),
		OrderID:   order.OrderID,
		StudentID: order.StudentID,
		Amount:    order.TotalAmount,
		Items:     order.Items,
		Timestamp: now,
	}
	updated, err := u.orders.ConfirmPayment(ctx, orderID, ref.PaymentID, bill, now)
	if err != nil {
		return nil, err
	}

	u.logger.Info("payment confirmed",
		slog.String("order_id", updated.OrderID),
		slog.String("payment_id", ref.PaymentID),
	)
	u.announce(ctx, *updated)
	return updated, nil
}

// SetStatus applies a staff-initiated status change.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID string, next model.OrderStatus, actor model.Actor) (*model.Order, error) {
	if !actor.Role.IsStaff() {
		return nil, domainErrors.ErrUnauthorized
	}
	if !next.IsValid() {
		return nil, domainErrors.ErrInvalidTransition
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeCanteen(actor, order.CanteenID); err != nil {
		return nil, err
	}

	// Entering REQUESTED is reserved to ConfirmPayment.
	if order.Status == model.OrderStatusPendingPayment && next == model.OrderStatusRequested {
		return nil, domainErrors.ErrInvalidTransition
	}
	if !u.policy.Allowed(order.Status, next) {
		return nil, domainErrors.ErrInvalidTransition
	}

	updated, err := u.orders.CompareAndSetStatus(ctx, orderID, order.Status, next, u.now().UTC())
	if err != nil {
		return nil, err
	}

	u.logger.Info("order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(next)),
		slog.String("actor", actor.UserID),
	)
	u.announce(ctx, *updated)
	return updated, nil
}

// CancelExpired cancels order if it is still unpaid past its deadline.
func (u *OrderUseCase) CancelExpired(ctx context.Context, order model.Order) (*model.Order, error) {
	now := u.now().UTC()
	if order.Status != model.OrderStatusPendingPayment || !order.ExpiresAt.Before(now) {
		return nil, domainErrors.ErrInvalidTransition
	}

	updated, err := u.orders.CompareAndSetStatus(ctx, order.OrderID, model.OrderStatusPendingPayment, model.OrderStatusCancelled, now)
	if err != nil {
		return nil, err
	}
	u.logger.Info("unpaid order expired", slog.String("order_id", order.OrderID))
	u.announce(ctx, *updated)
	return updated, nil
}

// ExpiredOrders lists unpaid orders past their deadline.
func (u *OrderUseCase) ExpiredOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListExpiredPending(ctx, u.now().UTC(), limit)
}

// Purge deletes orders created more than retention ago.
func (u *OrderUseCase) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return u.orders.PurgeCreatedBefore(ctx, u.now().UTC().Add(-retention))
}

// Get returns an order visible to actor.
func (u *OrderUseCase) Get(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStudent {
		if order.StudentID != actor.UserID {
			return nil, domainErrors.ErrUnauthorized
		}
		return order, nil
	}
	if err := AuthorizeCanteen(actor, order.CanteenID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByStudent returns the student's orders, newest first.
func (u *OrderUseCase) ListByStudent(ctx context.Context, studentID string) ([]model.Order, error) {
	return u.orders.ListByStudent(ctx, studentID)
}

// ActiveForCanteen returns paid orders not yet collected, oldest first.
func (u *OrderUseCase) ActiveForCanteen(ctx context.Context, canteenID string, actor model.Actor) ([]model.Order, error) {
	if err := AuthorizeCanteen(actor, canteenID); err != nil {
		return nil, err
	}
	return u.orders.ListByCanteen(ctx, canteenID, activeStatuses)
}

// AllowedNext lists the statuses staff may move an order in from to.
func (u *OrderUseCase) AllowedNext(from model.OrderStatus) []model.OrderStatus {
	next := u.policy.Next(from)
	if from != model.OrderStatusPendingPayment {
		return next
	}
	out := make([]model.OrderStatus, 0, len(next))
	for _, s := range next {
		if s != model.OrderStatusRequested {
			out = append(out, s)
		}
	}
	return out
}

func (u *OrderUseCase) announce(ctx context.Context, order model.Order) {
	event := model.EventFor(order)
	u.events.Emit(ctx, notify.CanteenChannel(order.CanteenID), event)
	u.events.Emit(ctx, notify.StudentChannel(order.StudentID), event)
}
