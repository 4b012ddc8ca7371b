package cartrepo

import (
	"context"
	"database/sql"
)

// Row is a cart entry joined with its product, the shape the cart listing
// returns.
type Row struct {
	CartID        int64   `json:"cartId"`
	Quantity      int64   `json:"quantity"`
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	PricePerDay   float64 `json:"pricePerDay"`
	ImageURL      string  `json:"imageUrl"`
	AddedByUserID int64   `json:"addedByUserId"`
}

type Repo interface {
	// LenderOfCart returns the lender owning the products already in the
	// user's cart. ok is false for an empty cart.
	LenderOfCart(ctx context.Context, tx *sql.Tx, userID int64) (lenderID int64, ok bool, err error)

	Upsert(ctx context.Context, tx *sql.Tx, userID, productID, qty int64) (cartID int64, err error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) (userID, productID, qty int64, err error)
	SetQuantity(ctx context.Context, tx *sql.Tx, cartID, qty int64) error
	Delete(ctx context.Context, tx *sql.Tx, cartID int64) error
	Clear(ctx context.Context, tx *sql.Tx, userID int64) error

	ListByUser(ctx context.Context, userID int64) ([]Row, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) LenderOfCart(ctx context.Context, tx *sql.Tx, userID int64) (int64, bool, error) {
	const q = `
		SELECT p.added_by_user_id
		FROM cart_items c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.user_id = $1
		LIMIT 1`
	var lenderID int64
	err := tx.QueryRowContext(ctx, q, userID).Scan(&lenderID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return lenderID, true, nil
}

func (r *repo) Upsert(ctx context.Context, tx *sql.Tx, userID, productID, qty int64) (int64, error) {
	// (user_id, product_id) is unique; a duplicate add bumps the quantity.
	const q = `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING cart_id`
	var cartID int64
	if err := tx.QueryRowContext(ctx, q, userID, productID, qty).Scan(&cartID); err != nil {
		return 0, err
	}
	return cartID, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, cartID int64) (int64, int64, int64, error) {
	const q = `
		SELECT user_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		FOR UPDATE`
	var userID, productID, qty int64
	err := tx.QueryRowContext(ctx, q, cartID).Scan(&userID, &productID, &qty)
	return userID, productID, qty, err
}

func (r *repo) SetQuantity(ctx context.Context, tx *sql.Tx, cartID, qty int64) error {
	const q = `
		UPDATE cart_items
		SET quantity = $2
		WHERE cart_id = $1`
	_, err := tx.ExecContext(ctx, q, cartID, qty)
	return err
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, cartID int64) error {
	const q = `DELETE FROM cart_items WHERE cart_id = $1`
	_, err := tx.ExecContext(ctx, q, cartID)
	return err
}

func (r *repo) Clear(ctx context.Context, tx *sql.Tx, userID int64) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`
	_, err := tx.ExecContext(ctx, q, userID)
	return err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	const q = `
		SELECT c.cart_id, c.quantity, p.product_id, p.product_name,
			p.price_per_day, p.image_url, p.added_by_user_id
		FROM cart_items c
		JOIN products p ON p.product_id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.cart_id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.CartID, &row.Quantity, &row.ProductID, &row.ProductName,
			&row.PricePerDay, &row.ImageURL, &row.AddedByUserID,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
