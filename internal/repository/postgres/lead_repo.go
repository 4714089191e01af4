// internal/repository/postgres/lead_repo.go
package postgres

import (
	"context"
	"fmt"

	"fieldserve-backend/internal/domain/lead"
)

type LeadRepository struct {
	store *Store
}

func NewLeadRepository(store *Store) *LeadRepository {
	return &LeadRepository{store: store}
}

func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO leads (full_name, phone, source, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = pool.QueryRow(ctx, query,
		l.FullName, l.Phone, l.Source, l.Status, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context, status string, page, limit int) ([]lead.Lead, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, full_name, phone, source, status, notes, created_at, updated_at
		FROM leads WHERE 1=1
	`
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"
	max, offset := pagination(page, limit)
	args = append(args, max)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var out []lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(&l.ID, &l.FullName, &l.Phone, &l.Source, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
