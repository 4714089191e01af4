// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fieldserve-backend/internal/domain/product"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

const productColumns = `id, serial_number, name, category, stock, status,
       assigned_to, created_at, updated_at`

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.SerialNumber, &p.Name, &p.Category, &p.Stock, &p.Status,
		&p.AssignedTo, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

// Create inserts a new unit as in-stock inventory.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (serial_number, name, category, stock, status)
		VALUES ($1, $2, $3, 1, $4)
		RETURNING id, stock, status, created_at, updated_at
	`
	err = pool.QueryRow(ctx, query,
		p.SerialNumber, p.Name, p.Category, product.StatusInStock,
	).Scan(&p.ID, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindBySerial retrieves a unit by its serial number.
func (r *ProductRepository) FindBySerial(ctx context.Context, serial string) (*product.Product, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE serial_number = $1`
	return scanProduct(pool.QueryRow(ctx, query, serial))
}

// List retrieves products with optional status/category filters.
func (r *ProductRepository) List(ctx context.Context, f *product.ProductListFilters) ([]product.Product, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	limit, offset := pagination(f.Page, f.Limit)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Bind marks the unit out of stock and assigned to the customer.
func (r *ProductRepository) Bind(ctx context.Context, serial string, customerID int64) (*product.Product, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products
		SET status = $3, assigned_to = $2, stock = 0, updated_at = now()
		WHERE serial_number = $1
		RETURNING ` + productColumns
	return scanProduct(pool.QueryRow(ctx, query, serial, customerID, product.StatusOutOfStock))
}

// Release reverses a single binding back to in-stock.
func (r *ProductRepository) Release(ctx context.Context, serial string) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET status = $2, assigned_to = NULL, stock = 1, updated_at = now()
		WHERE serial_number = $1
	`
	tag, err := pool.Exec(ctx, query, serial, product.StatusInStock)
	if err != nil {
		return fmt.Errorf("failed to release product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ResetAllBindings returns every assigned unit to in-stock. Data-reset
// flows only, never normal traffic.
func (r *ProductRepository) ResetAllBindings(ctx context.Context) (int64, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE products
		SET status = $1, assigned_to = NULL, stock = 1, updated_at = now()
		WHERE assigned_to IS NOT NULL
	`
	tag, err := pool.Exec(ctx, query, product.StatusInStock)
	if err != nil {
		return 0, fmt.Errorf("failed to reset bindings: %w", err)
	}
	return tag.RowsAffected(), nil
}
