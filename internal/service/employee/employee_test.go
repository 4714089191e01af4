package employee

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/employee"
	"fieldserve-backend/internal/domain/visit"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type fakeEmployeeStore struct {
	byID map[int64]*employee.Employee
}

func (f *fakeEmployeeStore) Create(ctx context.Context, e *employee.Employee) error {
	e.ID = int64(len(f.byID) + 1)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEmployeeStore) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeStore) FindByPhone(ctx context.Context, phone string) (*employee.Employee, error) {
	for _, e := range f.byID {
		if e.Phone == phone {
			return e, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeEmployeeStore) List(ctx context.Context, fl *employee.EmployeeListFilters) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, *e)
	}
	return out, nil
}

type fakeVisitResolver struct {
	byID map[int64]visit.Service
}

func (f *fakeVisitResolver) FindByIDs(ctx context.Context, ids []int64) ([]visit.Service, error) {
	out := make([]visit.Service, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestCreateEmployeeRejectsUnknownRole(t *testing.T) {
	store := &fakeEmployeeStore{byID: map[int64]*employee.Employee{}}
	svc := NewEmployeeService(store, &fakeVisitResolver{}, zap.NewNop())

	_, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeRequest{
		FullName: "X",
		Phone:    "+911234567890",
		Role:     "Janitor",
	})
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateEmployeeDefaultsActive(t *testing.T) {
	store := &fakeEmployeeStore{byID: map[int64]*employee.Employee{}}
	svc := NewEmployeeService(store, &fakeVisitResolver{}, zap.NewNop())

	e, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeRequest{
		FullName: "Jane Tech",
		Phone:    "+911234567890",
		Role:     "Technician",
		JoinedAt: "2026-01-10",
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if e.Status != employee.StatusActive {
		t.Fatalf("status = %q, want active", e.Status)
	}
	if !e.JoinedAt.Valid {
		t.Fatal("joined_at not parsed")
	}
}

func TestCreateEmployeeRejectsBadJoinDate(t *testing.T) {
	store := &fakeEmployeeStore{byID: map[int64]*employee.Employee{}}
	svc := NewEmployeeService(store, &fakeVisitResolver{}, zap.NewNop())

	_, err := svc.CreateEmployee(context.Background(), &employee.CreateEmployeeRequest{
		FullName: "X",
		Phone:    "+911234567890",
		Role:     "Technician",
		JoinedAt: "10/01/2026",
	})
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWorkspaceResolvesAssignedVisits(t *testing.T) {
	now := time.Now()
	store := &fakeEmployeeStore{byID: map[int64]*employee.Employee{
		7: {ID: 7, FullName: "Jane", AssignedServices: pq.Int64Array{11, 12}},
	}}
	resolver := &fakeVisitResolver{byID: map[int64]visit.Service{
		11: {ID: 11, CustomerID: 1, ScheduledDate: now},
		12: {ID: 12, CustomerID: 2, ScheduledDate: now},
		13: {ID: 13, CustomerID: 3, ScheduledDate: now},
	}}
	svc := NewEmployeeService(store, resolver, zap.NewNop())

	visits, err := svc.Workspace(context.Background(), 7)
	if err != nil {
		t.Fatalf("Workspace: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("workspace has %d visits, want 2", len(visits))
	}
}

func TestWorkspaceUnknownEmployee(t *testing.T) {
	store := &fakeEmployeeStore{byID: map[int64]*employee.Employee{}}
	svc := NewEmployeeService(store, &fakeVisitResolver{}, zap.NewNop())

	if _, err := svc.Workspace(context.Background(), 404); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
