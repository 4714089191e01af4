// internal/repository/postgres/payment_repo.go
package postgres

import (
	"context"
	"fmt"

	"fieldserve-backend/internal/domain/payment"
)

type PaymentRepository struct {
	store *Store
}

func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{store: store}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (customer_id, amount, method, reference, notes, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = pool.QueryRow(ctx, query,
		p.CustomerID, p.Amount, p.Method, p.Reference, p.Notes, p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) List(ctx context.Context, customerID *int64, page, limit int) ([]payment.Payment, error) {
	pool, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, customer_id, amount, method, reference, notes, paid_at, created_at
		FROM payments WHERE 1=1
	`
	args := []interface{}{}
	if customerID != nil {
		args = append(args, *customerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}

	query += " ORDER BY paid_at DESC"
	max, offset := pagination(page, limit)
	args = append(args, max)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var out []payment.Payment
	for rows.Next() {
		var p payment.Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
