// internal/service/visit/visit.go
package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/customer"
	"fieldserve-backend/internal/domain/visit"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

// Scheduling cadence: every new customer gets visitCount future visits,
// visitIntervalMonths apart, anchored on the purchase date.
const (
	visitCount          = 3
	visitIntervalMonths = 4
)

// VisitStore persists visits.
type VisitStore interface {
	Create(ctx context.Context, v *visit.Service) error
	FindByID(ctx context.Context, id int64) (*visit.Service, error)
	FindByIDs(ctx context.Context, ids []int64) ([]visit.Service, error)
	List(ctx context.Context, f *visit.VisitListFilters) ([]visit.Service, error)
	Update(ctx context.Context, id int64, f *visit.UpdateFields) (*visit.Service, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerPools owns the customer's two visit reference pools.
type CustomerPools interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
	AttachUpcoming(ctx context.Context, customerID int64, visitIDs []int64) error
	MoveToHistory(ctx context.Context, customerID, visitID int64) error
}

// AssignmentStore records which visits an employee carries.
type AssignmentStore interface {
	AddAssignedService(ctx context.Context, employeeID, visitID int64) error
}

// Notifier pushes assignment events to connected technicians.
type Notifier interface {
	NotifyVisitAssigned(employeeID int64, v interface{})
}

type VisitService struct {
	visits    VisitStore
	customers CustomerPools
	employees AssignmentStore
	notifier  Notifier
	logger    *zap.Logger
}

func NewVisitService(
	visits VisitStore,
	customers CustomerPools,
	employees AssignmentStore,
	notifier Notifier,
	logger *zap.Logger,
) *VisitService {
	return &VisitService{
		visits:    visits,
		customers: customers,
		employees: employees,
		notifier:  notifier,
		logger:    logger,
	}
}

// PlanInitialVisits derives the fixed visit cadence for a new customer:
// purchase date + 4, 8 and 12 months, visit_no 1..3, status PENDING. Pure
// derivation, no I/O.
func PlanInitialVisits(customerID int64, purchaseDate time.Time) []visit.Service {
	visits := make([]visit.Service, 0, visitCount)
	for i := 1; i <= visitCount; i++ {
		visits = append(visits, visit.Service{
			CustomerID:    customerID,
			VisitNo:       i,
			ScheduledDate: purchaseDate.AddDate(0, visitIntervalMonths*i, 0),
			Tags:          pq.StringArray{visit.DefaultTag},
			Status:        visit.StatusPending,
		})
	}
	return visits
}

// ScheduleInitialVisits persists the planned visits and attaches their ids
// to the customer's upcoming pool. The returned ids include any visits
// created before a failure so the caller's compensation can delete them;
// there is no cross-write transaction here.
func (s *VisitService) ScheduleInitialVisits(ctx context.Context, customerID int64, purchaseDate time.Time) ([]int64, error) {
	planned := PlanInitialVisits(customerID, purchaseDate)

	created := make([]int64, 0, len(planned))
	for i := range planned {
		if err := s.visits.Create(ctx, &planned[i]); err != nil {
			s.logger.Error("partial visit scheduling",
				zap.Int64("customer_id", customerID),
				zap.Int("created", len(created)),
				zap.Error(err),
			)
			return created, fmt.Errorf("failed to create visit %d: %w", planned[i].VisitNo, err)
		}
		created = append(created, planned[i].ID)
	}

	if err := s.customers.AttachUpcoming(ctx, customerID, created); err != nil {
		s.logger.Error("failed to attach upcoming visits",
			zap.Int64("customer_id", customerID),
			zap.Int64s("visit_ids", created),
			zap.Error(err),
		)
		return created, err
	}

	return created, nil
}

// CreateVisit is the explicit creation path for one-off visits outside
// the initial cadence. The new visit joins the customer's upcoming pool.
func (s *VisitService) CreateVisit(ctx context.Context, req *visit.CreateVisitRequest) (*visit.Service, error) {
	if _, err := s.customers.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	tags := req.Tags
	if len(tags) == 0 {
		tags = []string{visit.DefaultTag}
	}

	v := &visit.Service{
		CustomerID:    req.CustomerID,
		VisitNo:       req.VisitNo,
		ScheduledDate: req.ScheduledDate,
		Tags:          pq.StringArray(tags),
		Status:        visit.StatusPending,
	}
	if req.Notes != "" {
		v.Notes.String, v.Notes.Valid = req.Notes, true
	}

	if err := s.visits.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := s.customers.AttachUpcoming(ctx, req.CustomerID, []int64{v.ID}); err != nil {
		s.logger.Error("visit created but not attached to customer",
			zap.Int64("visit_id", v.ID),
			zap.Int64("customer_id", req.CustomerID),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}

// GetVisit retrieves one visit.
func (s *VisitService) GetVisit(ctx context.Context, id int64) (*visit.Service, error) {
	return s.visits.FindByID(ctx, id)
}

// ListVisits retrieves visits by filter.
func (s *VisitService) ListVisits(ctx context.Context, f *visit.VisitListFilters) ([]visit.Service, error) {
	return s.visits.List(ctx, f)
}

// CustomerUpcoming resolves the customer's upcoming pool to visits.
func (s *VisitService) CustomerUpcoming(ctx context.Context, customerID int64) ([]visit.Service, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.visits.FindByIDs(ctx, c.UpcomingServices)
}

// CustomerHistory resolves the customer's completed pool to visits.
func (s *VisitService) CustomerHistory(ctx context.Context, customerID int64) ([]visit.Service, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.visits.FindByIDs(ctx, c.ServiceHistory)
}

// UpdateVisit applies a partial update with its derived side effects:
// first technician attachment stamps assigned_date, records the visit on
// the employee and notifies them; a transition to COMPLETED stamps
// closing_date and migrates the visit from the customer's upcoming pool
// to history. The visit update and the pool migration are two writes; a
// failed second write leaves a logged reconciliation gap, never a
// rollback of the first.
func (s *VisitService) UpdateVisit(ctx context.Context, id int64, req *visit.UpdateVisitRequest) (*visit.Service, error) {
	existing, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !visit.ValidStatus(*req.Status) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, fmt.Sprintf("unknown status %q", *req.Status))
	}

	fields := &visit.UpdateFields{
		ScheduledDate: req.ScheduledDate,
		Tags:          req.Tags,
		EmployeeID:    req.EmployeeID,
		Notes:         req.Notes,
		Status:        req.Status,
	}

	firstAssignment := req.EmployeeID != nil && !existing.EmployeeID.Valid
	if firstAssignment {
		now := time.Now()
		fields.AssignedDate = &now
	}

	completing := req.Status != nil &&
		*req.Status == visit.StatusCompleted &&
		existing.Status != visit.StatusCompleted
	if completing {
		now := time.Now()
		fields.ClosingDate = &now
	}

	updated, err := s.visits.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if req.EmployeeID != nil {
		if err := s.employees.AddAssignedService(ctx, *req.EmployeeID, id); err != nil {
			s.logger.Error("failed to record assignment on employee",
				zap.Int64("visit_id", id),
				zap.Int64("employee_id", *req.EmployeeID),
				zap.Error(err),
			)
		}
		s.notifier.NotifyVisitAssigned(*req.EmployeeID, updated)
	}

	if completing {
		if err := s.customers.MoveToHistory(ctx, existing.CustomerID, id); err != nil {
			s.logger.Error("visit completed but pool migration failed",
				zap.Int64("visit_id", id),
				zap.Int64("customer_id", existing.CustomerID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("visit updated but history migration failed: %w", err)
		}
		s.logger.Info("visit completed",
			zap.Int64("visit_id", id),
			zap.Int64("customer_id", existing.CustomerID),
		)
	}

	return updated, nil
}
