package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `order_id, student_id, canteen_id, items, token_number, status, payment_id, total_amount, created_at, updated_at, expires_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.storage.pool.Exec(ctx, query,
		order.OrderID, order.StudentID, order.CanteenID, string(items), order.TokenNumber, order.Status,
		order.PaymentID, order.TotalAmount, order.CreatedAt, order.UpdatedAt, order.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE order_id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
}

func (r *orderRepository) GetByToken(ctx context.Context, token int) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE token_number=$1
                   ORDER BY status IN ('COMPLETED', 'CANCELLED'), created_at DESC
                   LIMIT 1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, token))
}

func (r *orderRepository) TokenInUse(ctx context.Context, token int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM orders WHERE token_number=$1
                   AND status NOT IN ('COMPLETED', 'CANCELLED'))`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *orderRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE student_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListByCanteen(ctx context.Context, canteenID string, statuses []model.OrderStatus) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE canteen_id=$1 AND status = ANY($2)
                   ORDER BY created_at`
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}
	rows, err := r.storage.pool.Query(ctx, query, canteenID, raw)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) CompareAndSetStatus(ctx context.Context, orderID string, expected, next model.OrderStatus, at time.Time) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1, updated_at=$2 WHERE order_id=$3 AND status=$4
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, next, at, orderID, expected))
	if err == nil {
		return order, nil
	}
	if isUniqueViolation(err) {
		// idx_orders_active_token: the order's token was handed out again.
		return nil, domainErrors.ErrStatusConflict
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if _, err := r.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return nil, domainErrors.ErrStatusConflict
}

func (r *orderRepository) ConfirmPayment(ctx context.Context, orderID, paymentID string, bill *model.Bill, at time.Time) (*model.Order, error) {
	items, err := json.Marshal(bill.Items)
	if err != nil {
		return nil, fmt.Errorf("encode bill items: %w", err)
	}

	var order *model.Order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const confirmQuery = `UPDATE orders SET status=$1, payment_id=$2, updated_at=$3
                              WHERE order_id=$4 AND status=$5
                              RETURNING ` + orderColumns
		confirmed, err := scanOrder(tx.QueryRow(ctx, confirmQuery,
			model.OrderStatusRequested, paymentID, at, orderID, model.OrderStatusPendingPayment))
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrStatusConflict
			}
			return err
		}

		const insertBill = `INSERT INTO bills (bill_id, order_id, student_id, amount, items, created_at)
                            VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.Exec(ctx, insertBill, bill.BillID, bill.OrderID, bill.StudentID, bill.Amount, string(items), bill.Timestamp); err != nil {
			return err
		}

		if err := rollSpendingTx(ctx, tx, bill.StudentID, bill.Amount, at); err != nil {
			return err
		}

		order = confirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status='PENDING_PAYMENT' AND expires_at < $1
                   ORDER BY expires_at
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) PurgeCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM orders WHERE created_at < $1`
	tag, err := r.storage.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(&o.OrderID, &o.StudentID, &o.CanteenID, &items, &o.TokenNumber, &o.Status,
		&o.PaymentID, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt, &o.ExpiresAt)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items of %s: %w", o.OrderID, err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
