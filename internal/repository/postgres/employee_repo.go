// internal/repository/postgres/employee_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fieldserve-backend/internal/domain/employee"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type EmployeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

const employeeColumns = `id, full_name, phone, role, status, address, joined_at,
       last_working_date, assigned_services, created_at, updated_at`

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FullName, &e.Phone, &e.Role, &e.Status, &e.Address, &e.JoinedAt,
		&e.LastWorkingDate, &e.AssignedServices, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &e, nil
}

// Create inserts a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (full_name, phone, role, status, address, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err = pool.QueryRow(ctx, query,
		e.FullName, e.Phone, e.Role, e.Status, e.Address, e.JoinedAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// FindByPhone retrieves the employee registered under the phone number.
// Phone uniquely identifies at most one employee, which is what makes it
// usable as the login key.
func (r *EmployeeRepository) FindByPhone(ctx context.Context, phone string) (*employee.Employee, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE phone = $1`
	return scanEmployee(pool.QueryRow(ctx, query, phone))
}

// FindByID retrieves an employee by id.
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(pool.QueryRow(ctx, query, id))
}

// List retrieves employees with optional role/status filters.
func (r *EmployeeRepository) List(ctx context.Context, f *employee.EmployeeListFilters) ([]employee.Employee, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []interface{}{}

	if f.Role != "" {
		args = append(args, f.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY full_name"
	limit, offset := pagination(f.Page, f.Limit)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// AddAssignedService appends a visit id to the employee's assigned set.
// Idempotent: appending an id already present is a no-op.
func (r *EmployeeRepository) AddAssignedService(ctx context.Context, employeeID, visitID int64) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET assigned_services = array_append(assigned_services, $2),
		    updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(assigned_services))
	`
	if _, err := pool.Exec(ctx, query, employeeID, visitID); err != nil {
		return fmt.Errorf("failed to add assigned service: %w", err)
	}
	return nil
}

func pagination(page, limit int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
