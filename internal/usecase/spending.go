package usecase

import (
	"context"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

// TopItemsLimit is how many items the sales ranking returns.
const TopItemsLimit = 10

// SpendingUseCase exposes a student's bills and spending totals.
type SpendingUseCase struct {
	bills    repository.BillRepository
	spending repository.SpendingRepository
	now      func() time.Time
}

// NewSpendingUseCase constructs SpendingUseCase.
func NewSpendingUseCase(bills repository.BillRepository, spending repository.SpendingRepository) *SpendingUseCase {
	return &SpendingUseCase{bills: bills, spending: spending, now: time.Now}
}

// Summary returns current day, week and month totals.
func (u *SpendingUseCase) Summary(ctx context.Context, studentID string) (*model.SpendingSummary, error) {
	summary, err := u.spending.Summary(ctx, studentID)
	if err != nil {
		return nil, err
	}
	current := summary.AsOf(u.now())
	return &current, nil
}

// Bills returns the student's receipts, newest first.
func (u *SpendingUseCase) Bills(ctx context.Context, studentID string) ([]model.Bill, error) {
	return u.bills.ListByStudent(ctx, studentID)
}

// AnalyticsUseCase reports sales over completed orders to management.
type AnalyticsUseCase struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsUseCase constructs AnalyticsUseCase.
func NewAnalyticsUseCase(analytics repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analytics: analytics}
}

// Revenue aggregates completed orders of canteenID, or of every canteen when empty.
func (u *AnalyticsUseCase) Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
	return u.analytics.Revenue(ctx, canteenID)
}

// TopItems ranks items by revenue.
func (u *AnalyticsUseCase) TopItems(ctx context.Context, canteenID string) ([]model.ItemSales, error) {
	return u.analytics.TopItems(ctx, canteenID, TopItemsLimit)
}
