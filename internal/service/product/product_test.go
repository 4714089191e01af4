package product

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/product"
	xerrors "fieldserve-backend/internal/pkg/errors"
)

type fakeProductStore struct {
	bySerial map[string]*product.Product
	nextID   int64
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{bySerial: map[string]*product.Product{}, nextID: 1}
}

func (f *fakeProductStore) Create(ctx context.Context, p *product.Product) error {
	if _, exists := f.bySerial[p.SerialNumber]; exists {
		return xerrors.ErrConflict
	}
	p.ID = f.nextID
	f.nextID++
	p.Stock = 1
	p.Status = product.StatusInStock
	stored := *p
	f.bySerial[p.SerialNumber] = &stored
	return nil
}

func (f *fakeProductStore) FindBySerial(ctx context.Context, serial string) (*product.Product, error) {
	p, ok := f.bySerial[serial]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProductStore) List(ctx context.Context, fl *product.ProductListFilters) ([]product.Product, error) {
	out := make([]product.Product, 0, len(f.bySerial))
	for _, p := range f.bySerial {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) Bind(ctx context.Context, serial string, customerID int64) (*product.Product, error) {
	p, ok := f.bySerial[serial]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	p.AssignedTo = sql.NullInt64{Int64: customerID, Valid: true}
	p.Stock = 0
	p.Status = product.StatusOutOfStock
	out := *p
	return &out, nil
}

func (f *fakeProductStore) Release(ctx context.Context, serial string) error {
	p, ok := f.bySerial[serial]
	if !ok {
		return xerrors.ErrNotFound
	}
	p.AssignedTo = sql.NullInt64{}
	p.Stock = 1
	p.Status = product.StatusInStock
	return nil
}

func (f *fakeProductStore) ResetAllBindings(ctx context.Context) (int64, error) {
	var count int64
	for _, p := range f.bySerial {
		if p.AssignedTo.Valid {
			p.AssignedTo = sql.NullInt64{}
			p.Stock = 1
			p.Status = product.StatusInStock
			count++
		}
	}
	return count, nil
}

func newTestProductService() (*ProductService, *fakeProductStore) {
	store := newFakeProductStore()
	return NewProductService(store, zap.NewNop()), store
}

func TestIntakeStartsInStock(t *testing.T) {
	svc, _ := newTestProductService()

	p, err := svc.Intake(context.Background(), &product.IntakeProductRequest{
		SerialNumber: "RO-1001",
		Name:         "Purifier X",
		Category:     "RO",
	})
	if err != nil {
		t.Fatalf("Intake: %v", err)
	}
	if p.Status != product.StatusInStock || p.Stock != 1 {
		t.Fatalf("status = %q stock = %d, want In Stock/1", p.Status, p.Stock)
	}
	if p.AssignedTo.Valid {
		t.Fatal("new unit must be unassigned")
	}
}

func TestIntakeRequiresSerial(t *testing.T) {
	svc, _ := newTestProductService()
	_, err := svc.Intake(context.Background(), &product.IntakeProductRequest{Name: "X"})
	if !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBindToCustomerTransitionsOutOfStock(t *testing.T) {
	svc, store := newTestProductService()
	if _, err := svc.Intake(context.Background(), &product.IntakeProductRequest{SerialNumber: "RO-1001", Name: "X"}); err != nil {
		t.Fatal(err)
	}

	p, err := svc.BindToCustomer(context.Background(), "RO-1001", 42)
	if err != nil {
		t.Fatalf("BindToCustomer: %v", err)
	}
	if p.Status != product.StatusOutOfStock || p.Stock != 0 {
		t.Fatalf("status = %q stock = %d, want Out of Stock/0", p.Status, p.Stock)
	}
	if !p.AssignedTo.Valid || p.AssignedTo.Int64 != 42 {
		t.Fatalf("assigned_to = %v, want 42", p.AssignedTo)
	}
	if stored := store.bySerial["RO-1001"]; !stored.AssignedTo.Valid {
		t.Fatal("binding not persisted")
	}
}

func TestBindToCustomerUnknownSerial(t *testing.T) {
	svc, _ := newTestProductService()
	if _, err := svc.BindToCustomer(context.Background(), "NOPE", 42); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBindToCustomerAlreadyAssigned(t *testing.T) {
	svc, _ := newTestProductService()
	if _, err := svc.Intake(context.Background(), &product.IntakeProductRequest{SerialNumber: "RO-1001", Name: "X"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.BindToCustomer(context.Background(), "RO-1001", 42); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.BindToCustomer(context.Background(), "RO-1001", 43); !xerrors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestReleaseBindingReturnsToStock(t *testing.T) {
	svc, store := newTestProductService()
	if _, err := svc.Intake(context.Background(), &product.IntakeProductRequest{SerialNumber: "RO-1001", Name: "X"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.BindToCustomer(context.Background(), "RO-1001", 42); err != nil {
		t.Fatal(err)
	}

	if err := svc.ReleaseBinding(context.Background(), "RO-1001"); err != nil {
		t.Fatalf("ReleaseBinding: %v", err)
	}
	p := store.bySerial["RO-1001"]
	if p.Status != product.StatusInStock || p.Stock != 1 || p.AssignedTo.Valid {
		t.Fatalf("unit not returned to stock: %+v", p)
	}
}

func TestResetAllBindings(t *testing.T) {
	svc, store := newTestProductService()
	for i, serial := range []string{"A-1", "A-2", "A-3"} {
		if _, err := svc.Intake(context.Background(), &product.IntakeProductRequest{SerialNumber: serial, Name: "X"}); err != nil {
			t.Fatal(err)
		}
		if i < 2 {
			if _, err := svc.BindToCustomer(context.Background(), serial, int64(100+i)); err != nil {
				t.Fatal(err)
			}
		}
	}

	count, err := svc.ResetAllBindings(context.Background())
	if err != nil {
		t.Fatalf("ResetAllBindings: %v", err)
	}
	if count != 2 {
		t.Fatalf("released %d units, want 2", count)
	}
	for serial, p := range store.bySerial {
		if p.AssignedTo.Valid || p.Status != product.StatusInStock {
			t.Errorf("%s still bound: %+v", serial, p)
		}
	}
}
