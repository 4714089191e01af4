// internal/service/product/product.go
package product

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/product"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

// ProductStore persists serialized stock units.
type ProductStore interface {
	Create(ctx context.Context, p *product.Product) error
	FindBySerial(ctx context.Context, serial string) (*product.Product, error)
	List(ctx context.Context, f *product.ProductListFilters) ([]product.Product, error)
	Bind(ctx context.Context, serial string, customerID int64) (*product.Product, error)
	Release(ctx context.Context, serial string) error
	ResetAllBindings(ctx context.Context) (int64, error)
}

type ProductService struct {
	products ProductStore
	logger   *zap.Logger
}

func NewProductService(products ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// Intake registers a new unit as in-stock inventory.
func (s *ProductService) Intake(ctx context.Context, req *product.IntakeProductRequest) (*product.Product, error) {
	serial := strings.TrimSpace(req.SerialNumber)
	if serial == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "serial number is required")
	}

	p := &product.Product{
		SerialNumber: serial,
		Name:         strings.TrimSpace(req.Name),
		Category:     strings.TrimSpace(req.Category),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product intake",
		zap.Int64("product_id", p.ID),
		zap.String("serial", p.SerialNumber),
	)
	return p, nil
}

// GetBySerial looks a unit up by serial number.
func (s *ProductService) GetBySerial(ctx context.Context, serial string) (*product.Product, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "serial number is required")
	}
	return s.products.FindBySerial(ctx, serial)
}

// List retrieves stock units by filter.
func (s *ProductService) List(ctx context.Context, f *product.ProductListFilters) ([]product.Product, error) {
	return s.products.List(ctx, f)
}

// BindToCustomer transitions the unit to out-of-stock, assigned to the
// customer. Fails with not-found for an unknown serial and with conflict
// when the unit is already bound elsewhere.
func (s *ProductService) BindToCustomer(ctx context.Context, serial string, customerID int64) (*product.Product, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "serial number is required")
	}

	existing, err := s.products.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if existing.AssignedTo.Valid && existing.AssignedTo.Int64 != customerID {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "product is already assigned")
	}

	p, err := s.products.Bind(ctx, serial, customerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product bound to customer",
		zap.String("serial", serial),
		zap.Int64("customer_id", customerID),
	)
	return p, nil
}

// ReleaseBinding reverses one binding, returning the unit to stock.
func (s *ProductService) ReleaseBinding(ctx context.Context, serial string) error {
	return s.products.Release(ctx, serial)
}

// ResetAllBindings returns every assigned unit to stock. Reserved for the
// data-reset flow.
func (s *ProductService) ResetAllBindings(ctx context.Context) (int64, error) {
	count, err := s.products.ResetAllBindings(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("stock bindings reset", zap.Int64("count", count))
	return count, nil
}
