package reviewrepo

import (
	"context"
	"database/sql"

	"renthub/model"
)

type Repo interface {
	OrderExists(ctx context.Context, orderID int64) (bool, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	AlreadyReviewed(ctx context.Context, orderID, productID, userID int64) (bool, error)
	Insert(ctx context.Context, orderID, productID, userID int64, text string, rating int) (int64, error)
	ByProduct(ctx context.Context, productID int64) ([]model.Review, error)
	Random(ctx context.Context, n int) ([]model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) exists(ctx context.Context, q string, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *repo) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM orders WHERE order_id = $1`, orderID)
}

func (r *repo) ProductExists(ctx context.Context, productID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM products WHERE product_id = $1`, productID)
}

func (r *repo) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM users WHERE user_id = $1`, userID)
}

func (r *repo) AlreadyReviewed(ctx context.Context, orderID, productID, userID int64) (bool, error) {
	const q = `
		SELECT 1
		FROM reviews
		WHERE order_id = $1 AND product_id = $2 AND user_id = $3`
	var one int
	err := r.db.QueryRowContext(ctx, q, orderID, productID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *repo) Insert(ctx context.Context, orderID, productID, userID int64, text string, rating int) (int64, error) {
	const q = `
		INSERT INTO reviews (order_id, product_id, user_id, review_text, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING review_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q, orderID, productID, userID, text, rating).Scan(&id)
	return id, err
}

func (r *repo) collect(rows *sql.Rows) ([]model.Review, error) {
	defer rows.Close()
	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(
			&rv.ID, &rv.OrderID, &rv.ProductID, &rv.UserID,
			&rv.Text, &rv.Rating, &rv.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) ByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	const q = `
		SELECT review_id, order_id, product_id, user_id, review_text, rating, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) Random(ctx context.Context, n int) ([]model.Review, error) {
	const q = `
		SELECT review_id, order_id, product_id, user_id, review_text, rating, created_at
		FROM reviews
		ORDER BY random()
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}
