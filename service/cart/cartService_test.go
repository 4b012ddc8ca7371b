package cart

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	stockrepo "renthub/repository/stock"

	"github.com/stretchr/testify/require"
)

// memStore fakes the database: one mutex held for the whole transaction
// stands in for the product row lock.
type memStore struct {
	mu       sync.Mutex
	products map[int64]stockrepo.ProductRow
	entries  map[int64]*entry
	roles    map[int64]string
	nextID   int64
}

type entry struct {
	userID    int64
	productID int64
	qty       int64
}

func newStore() *memStore {
	return &memStore{
		products: map[int64]stockrepo.ProductRow{},
		entries:  map[int64]*entry{},
		roles:    map[int64]string{},
		nextID:   1,
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

func (m *memStore) Lock(ctx context.Context, tx *sql.Tx, productID int64) (stockrepo.ProductRow, error) {
	p, ok := m.products[productID]
	if !ok {
		return stockrepo.ProductRow{}, sql.ErrNoRows
	}
	return p, nil
}

func (m *memStore) Reserve(ctx context.Context, tx *sql.Tx, productID, qty int64) error {
	p := m.products[productID]
	if p.Stock < qty {
		return sql.ErrNoRows
	}
	p.Stock -= qty
	m.products[productID] = p
	return nil
}

func (m *memStore) Release(ctx context.Context, tx *sql.Tx, productID, qty int64) error {
	p := m.products[productID]
	p.Stock += qty
	m.products[productID] = p
	return nil
}

func (m *memStore) LenderOfCart(ctx context.Context, tx *sql.Tx, userID int64) (int64, bool, error) {
	for _, e := range m.entries {
		if e.userID == userID {
			return m.products[e.productID].LenderID, true, nil
		}
	}
	return 0, false, nil
}

func (m *memStore) Upsert(ctx context.Context, tx *sql.Tx, userID, productID, qty int64) (int64, error) {
	for id, e := range m.entries {
		if e.userID == userID && e.productID == productID {
			e.qty += qty
			return id, nil
		}
	}
	id := m.nextID
	m.nextID++
	m.entries[id] = &entry{userID: userID, productID: productID, qty: qty}
	return id, nil
}

func (m *memStore) GetForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) (int64, int64, int64, error) {
	e, ok := m.entries[cartID]
	if !ok {
		return 0, 0, 0, sql.ErrNoRows
	}
	return e.userID, e.productID, e.qty, nil
}

func (m *memStore) SetQuantity(ctx context.Context, tx *sql.Tx, cartID, qty int64) error {
	m.entries[cartID].qty = qty
	return nil
}

func (m *memStore) Delete(ctx context.Context, tx *sql.Tx, cartID int64) error {
	delete(m.entries, cartID)
	return nil
}

func (m *memStore) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Row
	for id, e := range m.entries {
		if e.userID == userID {
			out = append(out, Row{CartID: id, ProductID: e.productID, Quantity: e.qty})
		}
	}
	return out, nil
}

func (m *memStore) Role(ctx context.Context, userID int64) (string, error) {
	r, ok := m.roles[userID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return r, nil
}

func (m *memStore) stock(productID int64) int64 { return m.products[productID].Stock }

// --- tests ---

func TestAdd_ReservesStock(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	out, err := svc.Add(ctx, 1, 10, 3)
	require.NoError(t, err)
	require.Equal(t, int64(2), out.RemainingStock)
	require.Equal(t, int64(2), m.stock(10))
	require.Equal(t, int64(3), m.entries[out.CartID].qty)
}

func TestAdd_AccumulatesExistingEntry(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	first, err := svc.Add(ctx, 1, 10, 2)
	require.NoError(t, err)
	second, err := svc.Add(ctx, 1, 10, 2)
	require.NoError(t, err)

	require.Equal(t, first.CartID, second.CartID)
	require.Equal(t, int64(4), m.entries[first.CartID].qty)
	require.Equal(t, int64(1), m.stock(10))
}

func TestAdd_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 2, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	_, err := svc.Add(ctx, 1, 10, 5)
	require.Error(t, err)
	require.Equal(t, ErrNoStock, Code(err))
	require.Equal(t, int64(2), Available(err))
	require.Equal(t, int64(2), m.stock(10))
	require.Empty(t, m.entries)
}

func TestAdd_RoleChecks(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[2] = "lender"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	_, err := svc.Add(ctx, 2, 10, 1)
	require.Equal(t, ErrNotRenter, Code(err))

	// unknown user
	_, err = svc.Add(ctx, 99, 10, 1)
	require.Equal(t, ErrNotRenter, Code(err))
}

func TestAdd_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[11] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: false}
	svc := New(m, m, m, m)

	_, err := svc.Add(ctx, 1, 10, 1)
	require.Equal(t, ErrProductNotFound, Code(err))

	// soft-deleted products look the same as missing ones
	_, err = svc.Add(ctx, 1, 11, 1)
	require.Equal(t, ErrProductNotFound, Code(err))
}

func TestAdd_SingleLenderPerCart(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	m.products[20] = stockrepo.ProductRow{Stock: 5, LenderID: 8, Active: true}
	m.products[21] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	_, err := svc.Add(ctx, 1, 10, 1)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 1, 20, 1)
	require.Equal(t, ErrMultiLender, Code(err))
	require.Equal(t, int64(5), m.stock(20))

	// same lender is fine
	_, err = svc.Add(ctx, 1, 21, 1)
	require.NoError(t, err)
}

func TestAdd_BadQuantity(t *testing.T) {
	svc := New(newStore(), newStore(), newStore(), newStore())
	_, err := svc.Add(context.Background(), 1, 10, 0)
	require.Equal(t, ErrBadQuantity, Code(err))
}

func TestUpdateQuantity_AdjustsReservation(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	out, err := svc.Add(ctx, 1, 10, 3)
	require.NoError(t, err)
	require.Equal(t, int64(2), m.stock(10))

	// shrink: the difference flows back
	require.NoError(t, svc.UpdateQuantity(ctx, out.CartID, 1))
	require.Equal(t, int64(4), m.stock(10))
	require.Equal(t, int64(1), m.entries[out.CartID].qty)

	// grow: the difference is reserved
	require.NoError(t, svc.UpdateQuantity(ctx, out.CartID, 4))
	require.Equal(t, int64(1), m.stock(10))

	// growing past the remaining stock fails and changes nothing
	err = svc.UpdateQuantity(ctx, out.CartID, 6)
	require.Equal(t, ErrNoStock, Code(err))
	require.Equal(t, int64(1), Available(err))
	require.Equal(t, int64(1), m.stock(10))
	require.Equal(t, int64(4), m.entries[out.CartID].qty)
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	m := newStore()
	svc := New(m, m, m, m)
	err := svc.UpdateQuantity(context.Background(), 99, 2)
	require.Equal(t, ErrItemNotFound, Code(err))
}

func TestRemove_RestoresStock(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 5, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	out, err := svc.Add(ctx, 1, 10, 3)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, out.CartID))

	require.Equal(t, int64(5), m.stock(10))
	require.Empty(t, m.entries)

	err = svc.Remove(ctx, out.CartID)
	require.Equal(t, ErrItemNotFound, Code(err))
	require.Equal(t, int64(5), m.stock(10))
}

// Two renters race for the last unit: exactly one wins.
func TestAdd_ConcurrentLastUnit(t *testing.T) {
	ctx := context.Background()
	m := newStore()
	m.roles[1] = "renter"
	m.roles[2] = "renter"
	m.products[10] = stockrepo.ProductRow{Stock: 1, LenderID: 7, Active: true}
	svc := New(m, m, m, m)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, uid := range []int64{1, 2} {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := svc.Add(ctx, uid, 10, 1)
			errs <- err
		}(uid)
	}
	wg.Wait()
	close(errs)

	var ok, noStock int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case Code(err) == ErrNoStock:
			noStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, noStock)
	require.Equal(t, int64(0), m.stock(10))
	require.Len(t, m.entries, 1)
}
