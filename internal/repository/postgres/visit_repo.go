// internal/repository/postgres/visit_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"fieldserve-backend/internal/domain/visit"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type VisitRepository struct {
	store *Store
}

func NewVisitRepository(store *Store) *VisitRepository {
	return &VisitRepository{store: store}
}

const visitColumns = `id, customer_id, visit_no, scheduled_date, tags,
       employee_id, assigned_date, closing_date, notes, status, created_at, updated_at`

func scanVisit(row pgx.Row) (*visit.Service, error) {
	var v visit.Service
	err := row.Scan(
		&v.ID, &v.CustomerID, &v.VisitNo, &v.ScheduledDate, &v.Tags,
		&v.EmployeeID, &v.AssignedDate, &v.ClosingDate, &v.Notes, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan visit: %w", err)
	}
	return &v, nil
}

// Create inserts a new visit.
func (r *VisitRepository) Create(ctx context.Context, v *visit.Service) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO services (customer_id, visit_no, scheduled_date, tags, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err = pool.QueryRow(ctx, query,
		v.CustomerID, v.VisitNo, v.ScheduledDate, v.Tags, v.Notes, v.Status,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

// FindByID retrieves a visit by id.
func (r *VisitRepository) FindByID(ctx context.Context, id int64) (*visit.Service, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + visitColumns + ` FROM services WHERE id = $1`
	return scanVisit(pool.QueryRow(ctx, query, id))
}

// FindByIDs retrieves the visits for a set of ids, ordered by scheduled
// date. Used for the customer pool views and the technician workspace.
func (r *VisitRepository) FindByIDs(ctx context.Context, ids []int64) ([]visit.Service, error) {
	if len(ids) == 0 {
		return []visit.Service{}, nil
	}

	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + visitColumns + ` FROM services WHERE id = ANY($1) ORDER BY scheduled_date`
	rows, err := pool.Query(ctx, query, pq.Int64Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	return collectVisits(rows)
}

// List retrieves visits with optional customer/employee/status filters.
func (r *VisitRepository) List(ctx context.Context, f *visit.VisitListFilters) ([]visit.Service, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + visitColumns + ` FROM services WHERE 1=1`
	args := []interface{}{}

	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if f.EmployeeID != nil {
		args = append(args, *f.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY scheduled_date"
	limit, offset := pagination(f.Page, f.Limit)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	return collectVisits(rows)
}

// Update applies the resolved field set and returns the updated visit.
func (r *VisitRepository) Update(ctx context.Context, id int64, f *visit.UpdateFields) (*visit.Service, error) {
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

	if f.ScheduledDate != nil {
		add("scheduled_date", *f.ScheduledDate)
	}
	if f.Tags != nil {
		add("tags", pq.StringArray(f.Tags))
	}
	if f.EmployeeID != nil {
		add("employee_id", *f.EmployeeID)
	}
	if f.AssignedDate != nil {
		add("assigned_date", *f.AssignedDate)
	}
	if f.ClosingDate != nil {
		add("closing_date", *f.ClosingDate)
	}
	if f.Notes != nil {
		add("notes", *f.Notes)
	}
	if f.Status != nil {
		add("status", *f.Status)
	}

	query := `UPDATE services SET ` + set + ` WHERE id = $1 RETURNING ` + visitColumns
	return scanVisit(pool.QueryRow(ctx, query, args...))
}

// Delete removes a visit row. Used by the customer-creation saga's
// compensation path only.
func (r *VisitRepository) Delete(ctx context.Context, id int64) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	return nil
}

func collectVisits(rows pgx.Rows) ([]visit.Service, error) {
	var out []visit.Service
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}
