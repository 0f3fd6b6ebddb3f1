package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

type menuRepository struct {
	storage *Storage
}

const menuColumns = `item_id, name, canteen_id, category, price, protein, stock_qty, available`

func (r *menuRepository) ListAvailable(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	const query = `SELECT ` + menuColumns + `
                   FROM menu_items WHERE available AND ($1::text = '' OR canteen_id = $1)
                   ORDER BY item_id`
	rows, err := r.storage.pool.Query(ctx, query, canteenID)
	if err != nil {
		return nil, err
	}
	return collectMenuItems(rows)
}

func (r *menuRepository) ListByCanteen(ctx context.Context, canteenID string) ([]model.MenuItem, error) {
	const query = `SELECT ` + menuColumns + ` FROM menu_items WHERE canteen_id=$1 ORDER BY item_id`
	rows, err := r.storage.pool.Query(ctx, query, canteenID)
	if err != nil {
		return nil, err
	}
	return collectMenuItems(rows)
}

func (r *menuRepository) Get(ctx context.Context, itemID string) (*model.MenuItem, error) {
	const query = `SELECT ` + menuColumns + ` FROM menu_items WHERE item_id=$1`
	return scanMenuItem(r.storage.pool.QueryRow(ctx, query, itemID))
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	const query = `INSERT INTO menu_items (` + menuColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.pool.Exec(ctx, query,
		item.ItemID, item.Name, item.CanteenID, item.Category, item.Price, item.Protein, item.StockQty, item.Available)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *menuRepository) Update(ctx context.Context, itemID string, update model.MenuItemUpdate) (*model.MenuItem, error) {
	const query = `UPDATE menu_items SET
                       price = COALESCE($2, price),
                       stock_qty = COALESCE($3, stock_qty),
                       available = COALESCE($4, available)
                   WHERE item_id=$1
                   RETURNING ` + menuColumns
	return scanMenuItem(r.storage.pool.QueryRow(ctx, query, itemID, update.Price, update.StockQty, update.Available))
}

func (r *menuRepository) Canteens(ctx context.Context) ([]model.Canteen, error) {
	const query = `SELECT canteen_id, name, description, operating_hours FROM canteens ORDER BY canteen_id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Canteen
	for rows.Next() {
		var c model.Canteen
		if err := rows.Scan(&c.CanteenID, &c.Name, &c.Description, &c.OperatingHours); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMenuItem(row rowScanner) (*model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(&m.ItemID, &m.Name, &m.CanteenID, &m.Category, &m.Price, &m.Protein, &m.StockQty, &m.Available)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func collectMenuItems(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
