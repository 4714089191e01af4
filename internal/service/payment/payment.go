// internal/service/payment/payment.go
package payment

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/customer"
	"fieldserve-backend/internal/domain/payment"
)

type PaymentStore interface {
	Create(ctx context.Context, p *payment.Payment) error
	List(ctx context.Context, customerID *int64, page, limit int) ([]payment.Payment, error)
}

// CustomerResolver confirms the customer exists before recording money
// against it.
type CustomerResolver interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type PaymentService struct {
	payments  PaymentStore
	customers CustomerResolver
	logger    *zap.Logger
}

func NewPaymentService(payments PaymentStore, customers CustomerResolver, logger *zap.Logger) *PaymentService {
	return &PaymentService{payments: payments, customers: customers, logger: logger}
}

func (s *PaymentService) RecordPayment(ctx context.Context, req *payment.RecordPaymentRequest) (*payment.Payment, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	p := &payment.Payment{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Method:     req.Method,
		PaidAt:     time.Now(),
	}
	if req.Reference != "" {
		p.Reference = sql.NullString{String: req.Reference, Valid: true}
	}
	if req.Notes != "" {
		p.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("payment_id", p.ID),
		zap.Int64("customer_id", p.CustomerID),
		zap.Float64("amount", p.Amount),
	)
	return p, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, customerID *int64, page, limit int) ([]payment.Payment, error) {
	return s.payments.List(ctx, customerID, page, limit)
}
