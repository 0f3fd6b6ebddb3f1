package repository

import (
	"context"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// BillRepository provides access to payment receipts.
type BillRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.Bill, error)
}

// SpendingRepository exposes aggregated student spending.
type SpendingRepository interface {
	Summary(ctx context.Context, studentID string) (*model.SpendingSummary, error)
}

// AnalyticsRepository aggregates completed orders. An empty canteenID covers every canteen.
type AnalyticsRepository interface {
	Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error)
	TopItems(ctx context.Context, canteenID string, limit int) ([]model.ItemSales, error)
}
