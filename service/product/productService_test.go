package productsvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"renthub/model"
	productrepo "renthub/repository/product"
	productsvc "renthub/service/product"
)

type repoMock struct {
	createFn     func(ctx context.Context, p productrepo.NewProduct) (int64, error)
	byIDFn       func(ctx context.Context, id int64) (*model.Product, error)
	searchFn     func(ctx context.Context, term string) ([]model.Product, error)
	updateFn     func(ctx context.Context, id int64, u productrepo.Update) error
	deactivateFn func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, p productrepo.NewProduct) (int64, error) {
	return m.createFn(ctx, p)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Product, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByLender(ctx context.Context, lenderID int64) ([]model.Product, error) {
	return nil, nil
}
func (m *repoMock) Search(ctx context.Context, term string) ([]model.Product, error) {
	return m.searchFn(ctx, term)
}
func (m *repoMock) RandomActive(ctx context.Context, n int) ([]model.Product, error) {
	return nil, nil
}
func (m *repoMock) Update(ctx context.Context, id int64, u productrepo.Update) error {
	return m.updateFn(ctx, id, u)
}
func (m *repoMock) Deactivate(ctx context.Context, id int64) error {
	return m.deactivateFn(ctx, id)
}
func (m *repoMock) PricePerDay(ctx context.Context, tx *sql.Tx, productID int64) (float64, error) {
	return 0, nil
}

func TestCreate_Validation(t *testing.T) {
	s := productsvc.New(&repoMock{}, nil)
	bad := []productrepo.NewProduct{
		{Name: "", Category: "cat", PricePerDay: 10, AddedByUserID: 1},
		{Name: "Tent", Category: "", PricePerDay: 10, AddedByUserID: 1},
		{Name: "Tent", Category: "cat", PricePerDay: 0, AddedByUserID: 1},
		{Name: "Tent", Category: "cat", PricePerDay: 10, StockQuantity: -1, AddedByUserID: 1},
		{Name: "Tent", Category: "cat", PricePerDay: 10, AddedByUserID: 0},
	}
	for _, p := range bad {
		if _, err := s.Create(context.Background(), p); err == nil {
			t.Fatalf("expected error for %+v", p)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, p productrepo.NewProduct) (int64, error) {
			if p.Name != "Camping Tent" {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	s := productsvc.New(m, nil)
	id, err := s.Create(context.Background(), productrepo.NewProduct{
		Name: "Camping Tent", Category: "Outdoor", PricePerDay: 50, StockQuantity: 3, AddedByUserID: 7,
	})
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestDetail_NoCacheFallsThrough(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return &model.Product{ID: id, Name: "Camping Tent"}, nil
		},
	}
	s := productsvc.New(m, nil)
	p, err := s.Detail(context.Background(), 5)
	if err != nil || p.ID != 5 {
		t.Fatalf("got %+v err=%v", p, err)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Product, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := productsvc.New(m, nil)
	if _, err := s.Detail(context.Background(), 5); productsvc.Code(err) != productsvc.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSearch_EmptyTerm(t *testing.T) {
	s := productsvc.New(&repoMock{}, nil)
	if _, err := s.Search(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty search term")
	}
}
