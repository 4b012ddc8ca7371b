package wishlistrepo

import (
	"context"
	"database/sql"
)

type Row struct {
	WishlistID    int64   `json:"wishlistId"`
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	PricePerDay   float64 `json:"pricePerDay"`
	ImageURL      string  `json:"imageUrl"`
	StockQuantity int64   `json:"stockQuantity"`
}

type Repo interface {
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Insert(ctx context.Context, userID, productID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]Row, error)
	Delete(ctx context.Context, userID, productID int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	const q = `
		SELECT 1
		FROM wishlist
		WHERE user_id = $1 AND product_id = $2`
	var one int
	err := r.db.QueryRowContext(ctx, q, userID, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *repo) Insert(ctx context.Context, userID, productID int64) (int64, error) {
	const q = `
		INSERT INTO wishlist (user_id, product_id)
		VALUES ($1, $2)
		RETURNING wishlist_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, userID, productID).Scan(&id)
	return id, err
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	const q = `
		SELECT w.wishlist_id, p.product_id, p.product_name, p.price_per_day,
			p.image_url, p.stock_quantity
		FROM wishlist w
		JOIN products p ON p.product_id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.wishlist_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(
			&row.WishlistID, &row.ProductID, &row.ProductName,
			&row.PricePerDay, &row.ImageURL, &row.StockQuantity,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, userID, productID int64) (bool, error) {
	const q = `
		DELETE FROM wishlist
		WHERE user_id = $1 AND product_id = $2`
	res, err := r.db.ExecContext(ctx, q, userID, productID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
