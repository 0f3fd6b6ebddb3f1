package repository

import (
	"context"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	// GetByToken returns the active order for token, most recent first.
	GetByToken(ctx context.Context, token int) (*model.Order, error)
	TokenInUse(ctx context.Context, token int) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Order, error)
	ListByCanteen(ctx context.Context, canteenID string, statuses []model.OrderStatus) ([]model.Order, error)
	// CompareAndSetStatus updates status only while the order is still in expected.
	CompareAndSetStatus(ctx context.Context, orderID string, expected, next model.OrderStatus, at time.Time) (*model.Order, error)
	// ConfirmPayment moves a PENDING_PAYMENT order to REQUESTED, stores the bill
	// and rolls the student's spending in a single transaction.
	ConfirmPayment(ctx context.Context, orderID, paymentID string, bill *model.Bill, at time.Time) (*model.Order, error)
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.Order, error)
	PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
