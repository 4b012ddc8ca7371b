package orderrepo

import (
	"context"
	"database/sql"

	"renthub/model"
)

// LenderRow is one order line visible to the lender who owns the product.
type LenderRow struct {
	OrderID     int64             `json:"orderId"`
	Status      model.OrderStatus `json:"status"`
	UserID      int64             `json:"userId"`
	ProductID   int64             `json:"productId"`
	ProductName string            `json:"productName"`
	Quantity    int64             `json:"quantity"`
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, userID int64, total float64, paymentMethod, address string) (int64, error)
	InsertItem(ctx context.Context, tx *sql.Tx, orderID, productID, qty int64, pricePerDay float64) error

	// LockStatus reads the order's status and release marker under a row
	// lock, serializing lifecycle transitions on the same order.
	LockStatus(ctx context.Context, tx *sql.Tx, orderID int64) (model.OrderStatus, bool, error)
	SetStatus(ctx context.Context, tx *sql.Tx, orderID int64, status model.OrderStatus) error

	// MarkStockReleased flips the release marker and reports whether this
	// call won the flip. Stock goes back exactly once per order.
	MarkStockReleased(ctx context.Context, tx *sql.Tx, orderID int64) (bool, error)

	Items(ctx context.Context, tx *sql.Tx, orderID int64) ([]model.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByLender(ctx context.Context, lenderID int64) ([]LenderRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, userID int64, total float64, paymentMethod, address string) (int64, error) {
	const q = `
		INSERT INTO orders (user_id, total_amount, payment_method, address, status)
		VALUES ($1, $2, $3, $4, 'Pending')
		RETURNING order_id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, userID, total, paymentMethod, address).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) InsertItem(ctx context.Context, tx *sql.Tx, orderID, productID, qty int64, pricePerDay float64) error {
	const q = `
		INSERT INTO order_items (order_id, product_id, quantity, price_per_day)
		VALUES ($1, $2, $3, $4)`
	_, err := tx.ExecContext(ctx, q, orderID, productID, qty, pricePerDay)
	return err
}

func (r *repo) LockStatus(ctx context.Context, tx *sql.Tx, orderID int64) (model.OrderStatus, bool, error) {
	const q = `
		SELECT status, stock_released
		FROM orders
		WHERE order_id = $1
		FOR UPDATE`
	var status model.OrderStatus
	var released bool
	err := tx.QueryRowContext(ctx, q, orderID).Scan(&status, &released)
	return status, released, err
}

func (r *repo) SetStatus(ctx context.Context, tx *sql.Tx, orderID int64, status model.OrderStatus) error {
	const q = `
		UPDATE orders
		SET status = $2
		WHERE order_id = $1`
	_, err := tx.ExecContext(ctx, q, orderID, status)
	return err
}

func (r *repo) MarkStockReleased(ctx context.Context, tx *sql.Tx, orderID int64) (bool, error) {
	const q = `
		UPDATE orders
		SET stock_released = TRUE
		WHERE order_id = $1
		AND stock_released = FALSE`
	res, err := tx.ExecContext(ctx, q, orderID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Items(ctx context.Context, tx *sql.Tx, orderID int64) ([]model.OrderItem, error) {
	const q = `
		SELECT product_id, quantity, price_per_day
		FROM order_items
		WHERE order_id = $1`
	rows, err := tx.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.PricePerDay); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const q = `
		SELECT o.order_id, o.total_amount, o.payment_method, o.address,
			o.status, o.order_date,
			oi.product_id, oi.quantity, oi.price_per_day
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		WHERE o.user_id = $1
		ORDER BY o.order_date DESC, o.order_id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	var cur *model.Order
	for rows.Next() {
		var o model.Order
		var it model.OrderItem
		if err := rows.Scan(
			&o.ID, &o.TotalAmount, &o.PaymentMethod, &o.Address,
			&o.Status, &o.OrderDate,
			&it.ProductID, &it.Quantity, &it.PricePerDay,
		); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != o.ID {
			o.UserID = userID
			out = append(out, o)
			cur = &out[len(out)-1]
		}
		cur.Items = append(cur.Items, it)
	}
	return out, rows.Err()
}

func (r *repo) ListByLender(ctx context.Context, lenderID int64) ([]LenderRow, error) {
	const q = `
		SELECT o.order_id, o.status, o.user_id,
			oi.product_id, p.product_name, oi.quantity
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN products p ON p.product_id = oi.product_id
		WHERE p.added_by_user_id = $1
		ORDER BY o.order_id DESC`
	rows, err := r.db.QueryContext(ctx, q, lenderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LenderRow
	for rows.Next() {
		var lr LenderRow
		if err := rows.Scan(
			&lr.OrderID, &lr.Status, &lr.UserID,
			&lr.ProductID, &lr.ProductName, &lr.Quantity,
		); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}
