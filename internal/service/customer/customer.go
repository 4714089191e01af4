// internal/service/customer/customer.go
package customer

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/customer"
	"fieldserve-backend/internal/domain/product"
	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/saga"
)

// CustomerStore persists customer records.
type CustomerStore interface {
	Create(ctx context.Context, c *customer.Customer) error
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
	List(ctx context.Context, f *customer.CustomerListFilters) ([]customer.Customer, error)
	Update(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// StockBinder is the slice of the stock state machine the creation
// workflow needs.
type StockBinder interface {
	BindToCustomer(ctx context.Context, serial string, customerID int64) (*product.Product, error)
	ReleaseBinding(ctx context.Context, serial string) error
}

// InitialScheduler derives and attaches the initial visit cadence.
type InitialScheduler interface {
	ScheduleInitialVisits(ctx context.Context, customerID int64, purchaseDate time.Time) ([]int64, error)
}

// VisitRemover deletes visits; only the creation saga's compensation
// path needs it.
type VisitRemover interface {
	Delete(ctx context.Context, id int64) error
}

type CustomerService struct {
	customers CustomerStore
	stock     StockBinder
	scheduler InitialScheduler
	visits    VisitRemover
	logger    *zap.Logger
}

func NewCustomerService(
	customers CustomerStore,
	stock StockBinder,
	scheduler InitialScheduler,
	visits VisitRemover,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		stock:     stock,
		scheduler: scheduler,
		visits:    visits,
		logger:    logger,
	}
}

// CreateCustomer runs the installation workflow as a saga: resolve the
// product by serial, insert the customer, bind the unit, schedule the
// initial visits. A failed step compensates the completed ones in reverse
// instead of leaving silent partial state.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	c := &customer.Customer{
		Reference:     "CUST-" + ulid.Make().String(),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         strings.TrimSpace(req.Phone),
		ProductSerial: strings.TrimSpace(req.ProductSerial),
		WarrantyYears: req.WarrantyYears,
		PurchaseDate:  req.PurchaseDate,
	}
	setNullString(&c.Email, req.Email)
	setNullString(&c.Address, req.Address)
	setNullString(&c.InvoiceNo, req.InvoiceNo)
	setNullString(&c.AMCPlan, req.AMCPlan)
	if req.Price > 0 {
		c.Price = sql.NullFloat64{Float64: req.Price, Valid: true}
	}

	var createdVisits []int64

	flow := saga.New("create-customer", s.logger).
		AddStep(saga.Step{
			Name: "insert-customer",
			Run: func(ctx context.Context) error {
				return s.customers.Create(ctx, c)
			},
			Compensate: func(ctx context.Context) error {
				return s.customers.Delete(ctx, c.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "bind-product",
			Run: func(ctx context.Context) error {
				p, err := s.stock.BindToCustomer(ctx, c.ProductSerial, c.ID)
				if err != nil {
					return err
				}
				c.ProductID = sql.NullInt64{Int64: p.ID, Valid: true}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.stock.ReleaseBinding(ctx, c.ProductSerial)
			},
		}).
		AddStep(saga.Step{
			Name: "schedule-visits",
			Run: func(ctx context.Context) error {
				ids, err := s.scheduler.ScheduleInitialVisits(ctx, c.ID, c.PurchaseDate)
				createdVisits = ids
				return err
			},
			Compensate: func(ctx context.Context) error {
				for _, id := range createdVisits {
					if err := s.visits.Delete(ctx, id); err != nil {
						return err
					}
				}
				return nil
			},
		})

	if err := flow.Execute(ctx); err != nil {
		return nil, err
	}

	// Re-read so the returned record carries the attached pools.
	created, err := s.customers.FindByID(ctx, c.ID)
	if err != nil {
		return c, nil
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", created.ID),
		zap.String("reference", created.Reference),
		zap.String("serial", created.ProductSerial),
	)
	return created, nil
}

// GetCustomer retrieves a customer by id.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// ListCustomers retrieves customers by filter.
func (s *CustomerService) ListCustomers(ctx context.Context, f *customer.CustomerListFilters) ([]customer.Customer, error) {
	return s.customers.List(ctx, f)
}

// UpdateCustomer applies a partial update to contact/commercial fields.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	return s.customers.Update(ctx, id, req)
}

func validateCreate(req *customer.CreateCustomerRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "full name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "phone is required")
	}
	if strings.TrimSpace(req.ProductSerial) == "" {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "product serial is required")
	}
	if req.PurchaseDate.IsZero() {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "purchase date is required")
	}
	return nil
}

func setNullString(dst *sql.NullString, v string) {
	v = strings.TrimSpace(v)
	if v != "" {
		dst.String, dst.Valid = v, true
	}
}
