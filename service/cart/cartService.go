package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	cartrepo "renthub/repository/cart"
	stockrepo "renthub/repository/stock"

	"renthub/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotRenter       ErrCode = "NOT_RENTER"
	ErrProductNotFound ErrCode = "PRODUCT_NOT_FOUND"
	ErrItemNotFound    ErrCode = "CART_ITEM_NOT_FOUND"
	ErrNoStock         ErrCode = "INSUFFICIENT_STOCK"
	ErrMultiLender     ErrCode = "MULTI_LENDER_CONFLICT"
	ErrBadQuantity     ErrCode = "BAD_QUANTITY"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// InsufficientStockError carries the sellable amount so callers can report it.
type InsufficientStockError struct{ Available int64 }

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items are available in stock", e.Available)
}
func (e InsufficientStockError) Code() ErrCode { return ErrNoStock }

// Available returns the stock reported by an InsufficientStockError, 0 otherwise.
func Available(err error) int64 {
	var se InsufficientStockError
	if errors.As(err, &se) {
		return se.Available
	}
	return 0
}

// dto

type Added struct {
	CartID         int64
	RemainingStock int64
}

// Row = repository shape
type Row = cartrepo.Row

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type StockRepo interface {
	Lock(ctx context.Context, tx *sql.Tx, productID int64) (stockrepo.ProductRow, error)
	Reserve(ctx context.Context, tx *sql.Tx, productID, qty int64) error
	Release(ctx context.Context, tx *sql.Tx, productID, qty int64) error
}

type Repo interface {
	LenderOfCart(ctx context.Context, tx *sql.Tx, userID int64) (int64, bool, error)
	Upsert(ctx context.Context, tx *sql.Tx, userID, productID, qty int64) (int64, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) (userID, productID, qty int64, err error)
	SetQuantity(ctx context.Context, tx *sql.Tx, cartID, qty int64) error
	Delete(ctx context.Context, tx *sql.Tx, cartID int64) error
	ListByUser(ctx context.Context, userID int64) ([]Row, error)
}

type Roles interface {
	Role(ctx context.Context, userID int64) (string, error)
}

type Service interface {
	// Add reserves qty units of the product and upserts the cart entry, as
	// one atomic unit.
	Add(ctx context.Context, userID, productID, qty int64) (*Added, error)

	// UpdateQuantity reserves or releases the difference between the
	// entry's current quantity and newQty.
	UpdateQuantity(ctx context.Context, cartID, newQty int64) error

	// Remove deletes the entry and hands its reservation back to stock.
	Remove(ctx context.Context, cartID int64) error

	// List returns the user's cart joined with product data. Read-only.
	List(ctx context.Context, userID int64) ([]Row, error)
}

// ----- Service implementation -----

type service struct {
	db    TxRunner
	r     Repo
	stock StockRepo
	users Roles
}

func New(db TxRunner, r Repo, stock StockRepo, users Roles) Service {
	return &service{db: db, r: r, stock: stock, users: users}
}

func (s *service) Add(ctx context.Context, userID, productID, qty int64) (*Added, error) {
	if qty < 1 {
		return nil, makeErr(ErrBadQuantity)
	}

	// Only renters carry carts.
	role, err := s.users.Role(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotRenter)
		}
		return nil, err
	}
	if role != model.RoleRenter {
		return nil, makeErr(ErrNotRenter)
	}

	var out Added
	err = s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		// Row lock on the product serializes concurrent reservations.
		p, err := s.stock.Lock(ctx, tx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrProductNotFound)
			}
			return err
		}
		if !p.Active {
			return makeErr(ErrProductNotFound)
		}
		if p.Stock < qty {
			return InsufficientStockError{Available: p.Stock}
		}

		// One lender per cart.
		cartLender, hasItems, err := s.r.LenderOfCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		if hasItems && cartLender != p.LenderID {
			return makeErr(ErrMultiLender)
		}

		cartID, err := s.r.Upsert(ctx, tx, userID, productID, qty)
		if err != nil {
			return err
		}
		if err := s.stock.Reserve(ctx, tx, productID, qty); err != nil {
			return err
		}

		out = Added{CartID: cartID, RemainingStock: p.Stock - qty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *service) UpdateQuantity(ctx context.Context, cartID, newQty int64) error {
	if newQty < 1 {
		return makeErr(ErrBadQuantity)
	}

	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		_, productID, current, err := s.r.GetForUpdate(ctx, tx, cartID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrItemNotFound)
			}
			return err
		}

		delta := newQty - current
		if delta == 0 {
			return nil
		}

		p, err := s.stock.Lock(ctx, tx, productID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrProductNotFound)
			}
			return err
		}

		switch {
		case delta > 0:
			if p.Stock < delta {
				return InsufficientStockError{Available: p.Stock}
			}
			if err := s.stock.Reserve(ctx, tx, productID, delta); err != nil {
				return err
			}
		default:
			if err := s.stock.Release(ctx, tx, productID, -delta); err != nil {
				return err
			}
		}

		return s.r.SetQuantity(ctx, tx, cartID, newQty)
	})
}

func (s *service) Remove(ctx context.Context, cartID int64) error {
	return s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		_, productID, qty, err := s.r.GetForUpdate(ctx, tx, cartID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrItemNotFound)
			}
			return err
		}
		if err := s.r.Delete(ctx, tx, cartID); err != nil {
			return err
		}
		return s.stock.Release(ctx, tx, productID, qty)
	})
}

func (s *service) List(ctx context.Context, userID int64) ([]Row, error) {
	return s.r.ListByUser(ctx, userID)
}
