package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

type billRepository struct {
	storage *Storage
}

type spendingRepository struct {
	storage *Storage
}

type analyticsRepository struct {
	storage *Storage
}

// rollSpendingTx adds amount to the student's totals, restarting every period
// whose boundary was crossed since the last update. Periods are UTC calendar
// days, ISO weeks and months, matching SpendingSummary.AsOf.
func rollSpendingTx(ctx context.Context, tx pgx.Tx, studentID string, amount float64, at time.Time) error {
	const query = `INSERT INTO spending_analytics (student_id, daily_total, weekly_total, monthly_total, last_updated)
                   VALUES ($1, $2, $2, $2, $3)
                   ON CONFLICT (student_id) DO UPDATE SET
                       daily_total = CASE WHEN date_trunc('day', spending_analytics.last_updated AT TIME ZONE 'UTC') = date_trunc('day', EXCLUDED.last_updated AT TIME ZONE 'UTC')
                           THEN spending_analytics.daily_total + EXCLUDED.daily_total ELSE EXCLUDED.daily_total END,
                       weekly_total = CASE WHEN date_trunc('week', spending_analytics.last_updated AT TIME ZONE 'UTC') = date_trunc('week', EXCLUDED.last_updated AT TIME ZONE 'UTC')
                           THEN spending_analytics.weekly_total + EXCLUDED.weekly_total ELSE EXCLUDED.weekly_total END,
                       monthly_total = CASE WHEN date_trunc('month', spending_analytics.last_updated AT TIME ZONE 'UTC') = date_trunc('month', EXCLUDED.last_updated AT TIME ZONE 'UTC')
                           THEN spending_analytics.monthly_total + EXCLUDED.monthly_total ELSE EXCLUDED.monthly_total END,
                       last_updated = EXCLUDED.last_updated`
	if _, err := tx.Exec(ctx, query, studentID, amount, at); err != nil {
		return fmt.Errorf("roll spending: %w", err)
	}
	return nil
}

func (r *billRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Bill, error) {
	const query = `SELECT bill_id, order_id, student_id, amount, items, created_at
                   FROM bills WHERE student_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Bill
	for rows.Next() {
		var (
			b     model.Bill
			items []byte
		)
		if err := rows.Scan(&b.BillID, &b.OrderID, &b.StudentID, &b.Amount, &items, &b.Timestamp); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &b.Items); err != nil {
			return nil, fmt.Errorf("decode items of %s: %w", b.BillID, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *spendingRepository) Summary(ctx context.Context, studentID string) (*model.SpendingSummary, error) {
	const query = `SELECT daily_total, weekly_total, monthly_total, last_updated
                   FROM spending_analytics WHERE student_id=$1`
	summary := model.SpendingSummary{StudentID: studentID}
	err := r.storage.pool.QueryRow(ctx, query, studentID).Scan(
		&summary.DailyTotal, &summary.WeeklyTotal, &summary.MonthlyTotal, &summary.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.SpendingSummary{StudentID: studentID}, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *analyticsRepository) Revenue(ctx context.Context, canteenID string) (*model.RevenueSummary, error) {
	const query = `SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
                   FROM orders WHERE status='COMPLETED' AND ($1::text = '' OR canteen_id = $1)`
	var summary model.RevenueSummary
	if err := r.storage.pool.QueryRow(ctx, query, canteenID).Scan(&summary.TotalRevenue, &summary.TotalOrders); err != nil {
		return nil, err
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}
	return &summary, nil
}

func (r *analyticsRepository) TopItems(ctx context.Context, canteenID string, limit int) ([]model.ItemSales, error) {
	const query = `SELECT item->>'item_id', MAX(item->>'item_name'),
                       SUM((item->>'quantity')::BIGINT),
                       SUM((item->>'quantity')::DOUBLE PRECISION * (item->>'price_at_order')::DOUBLE PRECISION) AS revenue
                   FROM orders, jsonb_array_elements(items) AS item
                   WHERE status='COMPLETED' AND ($1::text = '' OR canteen_id = $1)
                   GROUP BY item->>'item_id'
                   ORDER BY revenue DESC
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, canteenID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ItemSales
	for rows.Next() {
		var s model.ItemSales
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.Quantity, &s.Revenue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
