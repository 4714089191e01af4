// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"fieldserve-backend/internal/domain/customer"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type CustomerRepository struct {
	store *Store
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{store: store}
}

const customerColumns = `id, reference, full_name, phone, email, address,
       product_id, product_serial, price, invoice_no, warranty_years, amc_plan,
       purchase_date, upcoming_services, service_history, created_at, updated_at`

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.Reference, &c.FullName, &c.Phone, &c.Email, &c.Address,
		&c.ProductID, &c.ProductSerial, &c.Price, &c.InvoiceNo, &c.WarrantyYears, &c.AMCPlan,
		&c.PurchaseDate, &c.UpcomingServices, &c.ServiceHistory, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &c, nil
}

// Create inserts a new customer with empty visit pools.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO customers (
			reference, full_name, phone, email, address,
			product_id, product_serial, price, invoice_no, warranty_years, amc_plan,
			purchase_date, upcoming_services, service_history
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, '{}', '{}')
		RETURNING id, created_at, updated_at
	`
	err = pool.QueryRow(ctx, query,
		c.Reference, c.FullName, c.Phone, c.Email, c.Address,
		c.ProductID, c.ProductSerial, c.Price, c.InvoiceNo, c.WarrantyYears, c.AMCPlan,
		c.PurchaseDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindByID retrieves a customer by id.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(pool.QueryRow(ctx, query, id))
}

// List retrieves customers, optionally matching name or phone.
func (r *CustomerRepository) List(ctx context.Context, f *customer.CustomerListFilters) ([]customer.Customer, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR phone ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY created_at DESC"
	limit, offset := pagination(f.Page, f.Limit)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var out []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update applies a partial field update.
func (r *CustomerRepository) Update(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	set := "updated_at = now()"
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}
	if req.AMCPlan != nil {
		add("amc_plan", *req.AMCPlan)
	}

	query := `UPDATE customers SET ` + set + ` WHERE id = $1 RETURNING ` + customerColumns
	return scanCustomer(pool.QueryRow(ctx, query, args...))
}

// Delete removes a customer row. Only the creation saga's compensation
// path uses this; customers are not deleted in normal traffic.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// AttachUpcoming appends visit ids to the customer's upcoming pool.
func (r *CustomerRepository) AttachUpcoming(ctx context.Context, customerID int64, visitIDs []int64) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE customers
		SET upcoming_services = upcoming_services || $2,
		    updated_at = now()
		WHERE id = $1
	`
	tag, err := pool.Exec(ctx, query, customerID, pq.Int64Array(visitIDs))
	if err != nil {
		return fmt.Errorf("failed to attach upcoming services: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// MoveToHistory migrates one visit id from upcoming_services to
// service_history in a single atomic update. Concurrent completions of
// sibling visits cannot lose each other's migration because there is no
// read-modify-write of the pools. Calling it again for an already-moved
// visit is a no-op.
func (r *CustomerRepository) MoveToHistory(ctx context.Context, customerID, visitID int64) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE customers
		SET upcoming_services = array_remove(upcoming_services, $2),
		    service_history = array_append(service_history, $2),
		    updated_at = now()
		WHERE id = $1 AND $2 = ANY(upcoming_services)
	`
	if _, err := pool.Exec(ctx, query, customerID, visitID); err != nil {
		return fmt.Errorf("failed to migrate visit to history: %w", err)
	}
	return nil
}
