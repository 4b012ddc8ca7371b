// repository/stock/repo.go
package stockrepo

import (
	"context"
	"database/sql"
	"errors"
)

// ProductRow is the slice of a product the ledger cares about, read under a
// row lock.
type ProductRow struct {
	Stock    int64
	LenderID int64
	Active   bool
}

// Repo is the stock ledger. stock_quantity is mutated through Reserve and
// Release only; both must run inside the transaction that holds the row lock
// taken by Lock.
type Repo interface {
	Lock(ctx context.Context, tx *sql.Tx, productID int64) (ProductRow, error)
	Reserve(ctx context.Context, tx *sql.Tx, productID, qty int64) error
	Release(ctx context.Context, tx *sql.Tx, productID, qty int64) error
}

type repo struct{}

func New() Repo { return &repo{} }

func (r *repo) Lock(ctx context.Context, tx *sql.Tx, productID int64) (ProductRow, error) {
	const q = `
		SELECT stock_quantity, added_by_user_id, is_active
		FROM products
		WHERE product_id = $1
		FOR UPDATE`
	var p ProductRow
	err := tx.QueryRowContext(ctx, q, productID).Scan(&p.Stock, &p.LenderID, &p.Active)
	return p, err
}

func (r *repo) Reserve(ctx context.Context, tx *sql.Tx, productID, qty int64) error {
	// Guard: decrement only while enough stock remains.
	const q = `
		UPDATE products
		SET stock_quantity = stock_quantity - $2
		WHERE product_id = $1
		AND stock_quantity >= $2`
	res, err := tx.ExecContext(ctx, q, productID, qty)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return errors.New("insufficient stock")
	}
	return nil
}

func (r *repo) Release(ctx context.Context, tx *sql.Tx, productID, qty int64) error {
	const q = `
		UPDATE products
		SET stock_quantity = stock_quantity + $2
		WHERE product_id = $1`
	_, err := tx.ExecContext(ctx, q, productID, qty)
	return err
}
