package productrepo

import (
	"context"
	"database/sql"

	"renthub/model"
)

type NewProduct struct {
	Name          string
	Description   *string
	Category      string
	PricePerDay   float64
	StockQuantity int64
	Availability  *string
	ImageURL      string
	AddedByUserID int64
}

type Update struct {
	Name          string
	Description   string
	Category      string
	PricePerDay   float64
	StockQuantity int64
	Availability  string
	ImageURL      string
}

type Repo interface {
	Create(ctx context.Context, p NewProduct) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Product, error)
	ByLender(ctx context.Context, lenderID int64) ([]model.Product, error)
	Search(ctx context.Context, term string) ([]model.Product, error)
	RandomActive(ctx context.Context, n int) ([]model.Product, error)
	Update(ctx context.Context, id int64, u Update) error
	Deactivate(ctx context.Context, id int64) error

	// PricePerDay reads the current price inside the caller's transaction;
	// order placement snapshots it per line.
	PricePerDay(ctx context.Context, tx *sql.Tx, productID int64) (float64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const productColumns = `
	p.product_id, p.product_name, p.description, p.category, p.price_per_day,
	p.stock_quantity, p.availability, p.image_url, p.added_by_user_id,
	p.status, p.is_active, COALESCE(u.user_name, 'Unknown Lender'), p.created_at`

func (r *repo) Create(ctx context.Context, p NewProduct) (int64, error) {
	const q = `
		INSERT INTO products (product_name, description, category, price_per_day,
			stock_quantity, availability, image_url, added_by_user_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING product_id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.Name, p.Description, p.Category, p.PricePerDay,
		p.StockQuantity, p.Availability, p.ImageURL, p.AddedByUserID,
		model.ProductPending,
	).Scan(&id)
	return id, err
}

func scanProduct(s interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.PricePerDay,
		&p.StockQuantity, &p.Availability, &p.ImageURL, &p.AddedByUserID,
		&p.Status, &p.IsActive, &p.LenderName, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN users u ON u.user_id = p.added_by_user_id
		WHERE p.product_id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) collect(rows *sql.Rows) ([]model.Product, error) {
	defer rows.Close()
	var out []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repo) ByLender(ctx context.Context, lenderID int64) ([]model.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN users u ON u.user_id = p.added_by_user_id
		WHERE p.added_by_user_id = $1 AND p.is_active
		ORDER BY p.product_id DESC`
	rows, err := r.db.QueryContext(ctx, q, lenderID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) Search(ctx context.Context, term string) ([]model.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN users u ON u.user_id = p.added_by_user_id
		WHERE p.is_active
		AND (p.product_name ILIKE $1 OR p.category ILIKE $1)
		ORDER BY p.product_id DESC`
	rows, err := r.db.QueryContext(ctx, q, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) RandomActive(ctx context.Context, n int) ([]model.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN users u ON u.user_id = p.added_by_user_id
		WHERE p.is_active AND p.availability = 'available'
		ORDER BY random()
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) Update(ctx context.Context, id int64, u Update) error {
	const q = `
		UPDATE products
		SET product_name = $2, description = $3, category = $4,
			price_per_day = $5, stock_quantity = $6, availability = $7,
			image_url = $8
		WHERE product_id = $1`
	res, err := r.db.ExecContext(ctx, q, id,
		u.Name, u.Description, u.Category, u.PricePerDay,
		u.StockQuantity, u.Availability, u.ImageURL)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Deactivate is a soft delete: historical order items keep referencing the
// row, so products are never physically removed.
func (r *repo) Deactivate(ctx context.Context, id int64) error {
	const q = `
		UPDATE products
		SET is_active = FALSE
		WHERE product_id = $1
		AND is_active`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) PricePerDay(ctx context.Context, tx *sql.Tx, productID int64) (float64, error) {
	const q = `
		SELECT price_per_day
		FROM products
		WHERE product_id = $1`
	var price float64
	err := tx.QueryRowContext(ctx, q, productID).Scan(&price)
	return price, err
}
