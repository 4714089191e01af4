// internal/service/employee/employee.go
package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/employee"
	"fieldserve-backend/internal/domain/visit"
	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/policy"
)

// EmployeeStore persists employee records.
type EmployeeStore interface {
	Create(ctx context.Context, e *employee.Employee) error
	FindByID(ctx context.Context, id int64) (*employee.Employee, error)
	FindByPhone(ctx context.Context, phone string) (*employee.Employee, error)
	List(ctx context.Context, f *employee.EmployeeListFilters) ([]employee.Employee, error)
}

// VisitResolver resolves visit ids to records for the workspace view.
type VisitResolver interface {
	FindByIDs(ctx context.Context, ids []int64) ([]visit.Service, error)
}

type EmployeeService struct {
	employees EmployeeStore
	visits    VisitResolver
	logger    *zap.Logger
}

func NewEmployeeService(employees EmployeeStore, visits VisitResolver, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, visits: visits, logger: logger}
}

// CreateEmployee registers a new employee with an active status.
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error) {
	role := policy.Role(strings.TrimSpace(req.Role))
	if !role.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown role "+req.Role)
	}

	e := &employee.Employee{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     role,
		Status:   employee.StatusActive,
	}
	if req.Address != "" {
		e.Address.String, e.Address.Valid = req.Address, true
	}
	if req.JoinedAt != "" {
		joined, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "joined_at must be YYYY-MM-DD")
		}
		e.JoinedAt = sql.NullTime{Time: joined, Valid: true}
	}

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("employee created",
		zap.Int64("employee_id", e.ID),
		zap.String("role", string(e.Role)),
	)
	return e, nil
}

// GetEmployee retrieves an employee by id.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	return s.employees.FindByID(ctx, id)
}

// ListEmployees retrieves employees by filter.
func (s *EmployeeService) ListEmployees(ctx context.Context, f *employee.EmployeeListFilters) ([]employee.Employee, error) {
	return s.employees.List(ctx, f)
}

// Workspace returns the visits currently assigned to the employee,
// backing the technician's workspace page.
func (s *EmployeeService) Workspace(ctx context.Context, employeeID int64) ([]visit.Service, error) {
	e, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.visits.FindByIDs(ctx, e.AssignedServices)
}
