package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

const inventorySelect = `
	SELECT i.id, i.name, i.category, i.quantity, i.unit, i.cost_price,
	       i.selling_price, i.supplier, i.expiration_date, i.status,
	       i.created_by, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.role, ''),
	       i.created_at, i.updated_at
	FROM inventory_items i
	LEFT JOIN users u ON u.id = i.created_by`

func scanInventoryItem(row interface{ Scan(dest ...any) error }) (models.InventoryItem, error) {
	var i models.InventoryItem
	var expiration, createdAt, updatedAt time.Time
	err := row.Scan(&i.ID, &i.Name, &i.Category, &i.Quantity, &i.Unit, &i.CostPrice,
		&i.SellingPrice, &i.Supplier, &expiration, &i.Status,
		&i.CreatedByID, &i.CreatedBy.Name, &i.CreatedBy.Email, &i.CreatedBy.Role,
		&createdAt, &updatedAt)
	if err != nil {
		return models.InventoryItem{}, err
	}
	i.CreatedBy.ID = i.CreatedByID
	i.ExpirationDate = expiration.UTC().Format(time.RFC3339)
	i.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	i.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return i, nil
}

func (r *PostgresInventoryRepository) Create(item models.InventoryItem) (models.InventoryItem, error) {
	query := `INSERT INTO inventory_items
		(id, name, category, quantity, unit, cost_price, selling_price, supplier, expiration_date, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	item.ID = uuid.NewString()
	expiration, err := time.Parse(time.RFC3339, item.ExpirationDate)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid expiration date: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, item.ID, item.Name, item.Category, item.Quantity,
		item.Unit, item.CostPrice, item.SellingPrice, item.Supplier, expiration,
		item.Status, item.CreatedByID)
	if err != nil {
		return models.InventoryItem{}, err
	}
	return r.GetByID(item.ID)
}

func (r *PostgresInventoryRepository) Filter(f InventoryFilter) ([]models.InventoryItem, error) {
	query := inventorySelect + ` WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.Name != "" {
		query += fmt.Sprintf(" AND i.name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.Category != nil {
		query += fmt.Sprintf(" AND i.category = $%d", argIdx)
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
	}
	if f.Supplier != "" {
		query += fmt.Sprintf(" AND i.supplier ILIKE $%d", argIdx)
		args = append(args, "%"+f.Supplier+"%")
		argIdx++
	}
	query += " ORDER BY i.created_at DESC"

	return r.queryItems(query, args...)
}

func (r *PostgresInventoryRepository) GetByID(id string) (models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	item, err := scanInventoryItem(r.db.QueryRowContext(ctx, inventorySelect+` WHERE i.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return item, err
}

func (r *PostgresInventoryRepository) Update(item models.InventoryItem) (models.InventoryItem, error) {
	query := `UPDATE inventory_items
		SET name = $1, category = $2, quantity = $3, unit = $4, cost_price = $5,
		    selling_price = $6, supplier = $7, expiration_date = $8, status = $9, updated_at = now()
		WHERE id = $10`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	expiration, err := time.Parse(time.RFC3339, item.ExpirationDate)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("invalid expiration date: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, item.Name, item.Category, item.Quantity,
		item.Unit, item.CostPrice, item.SellingPrice, item.Supplier, expiration,
		item.Status, item.ID)
	if err != nil {
		return models.InventoryItem{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.InventoryItem{}, ErrItemNotFound
	}
	return r.GetByID(item.ID)
}

func (r *PostgresInventoryRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresInventoryRepository) LowStock() ([]models.InventoryItem, error) {
	query := inventorySelect + ` WHERE i.status = $1 OR i.quantity < $2 ORDER BY i.quantity ASC`
	return r.queryItems(query, models.StatusLowStock, policy.LowStockThreshold)
}

func (r *PostgresInventoryRepository) ExpiringBefore(cutoff time.Time) ([]models.InventoryItem, error) {
	query := inventorySelect + ` WHERE i.expiration_date <= $1 ORDER BY i.expiration_date ASC`
	return r.queryItems(query, cutoff)
}

func (r *PostgresInventoryRepository) TopBySellingPrice(limit int) ([]models.InventoryItem, error) {
	query := inventorySelect + ` ORDER BY i.selling_price DESC LIMIT $1`
	return r.queryItems(query, limit)
}

func (r *PostgresInventoryRepository) queryItems(query string, args ...any) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
