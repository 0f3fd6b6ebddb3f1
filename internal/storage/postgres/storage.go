package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type rowScanner interface {
	Scan(dest ...any) error
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Bills() repository.BillRepository {
	return &billRepository{storage: s}
}

func (s *Storage) Spending() repository.SpendingRepository {
	return &spendingRepository{storage: s}
}

func (s *Storage) Analytics() repository.AnalyticsRepository {
	return &analyticsRepository{storage: s}
}

func (s *Storage) Menu() repository.MenuRepository {
	return &menuRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id TEXT PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            canteen_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS canteens (
            canteen_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            operating_hours TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            item_id TEXT PRIMARY KEY,
            canteen_id TEXT NOT NULL,
            name TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            protein DOUBLE PRECISION NOT NULL DEFAULT 0,
            stock_qty INTEGER NOT NULL DEFAULT 0,
            available BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            order_id TEXT PRIMARY KEY,
            student_id TEXT NOT NULL,
            canteen_id TEXT NOT NULL,
            items JSONB NOT NULL,
            token_number INTEGER NOT NULL,
            status TEXT NOT NULL,
            payment_id TEXT,
            total_amount DOUBLE PRECISION NOT NULL,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            expires_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS bills (
            bill_id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL UNIQUE,
            student_id TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            items JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS spending_analytics (
            student_id TEXT PRIMARY KEY,
            daily_total DOUBLE PRECISION NOT NULL DEFAULT 0,
            weekly_total DOUBLE PRECISION NOT NULL DEFAULT 0,
            monthly_total DOUBLE PRECISION NOT NULL DEFAULT 0,
            last_updated TIMESTAMPTZ NOT NULL
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_active_token ON orders(token_number)
            WHERE status NOT IN ('COMPLETED', 'CANCELLED')`,
		`CREATE INDEX IF NOT EXISTS idx_orders_canteen ON orders(canteen_id, status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_student ON orders(student_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_expiry ON orders(expires_at) WHERE status = 'PENDING_PAYMENT'`,
		`CREATE INDEX IF NOT EXISTS idx_bills_student ON bills(student_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_canteen ON menu_items(canteen_id, item_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}
