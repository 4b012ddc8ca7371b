package order

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"renthub/model"
	"renthub/repository/events"
	orderrepo "renthub/repository/order"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound         ErrCode = "ORDER_NOT_FOUND"
	ErrUserNotFound     ErrCode = "USER_NOT_FOUND"
	ErrProductNotFound  ErrCode = "PRODUCT_NOT_FOUND"
	ErrBadInput         ErrCode = "BAD_INPUT"
	ErrInvalidStatus    ErrCode = "INVALID_STATUS"
	ErrTerminalState    ErrCode = "TERMINAL_STATE"
	ErrAlreadyCancelled ErrCode = "ALREADY_CANCELLED"
	ErrAlreadyDelivered ErrCode = "ALREADY_DELIVERED"
	ErrNotLender        ErrCode = "NOT_LENDER"
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

// dto

// Line is one cart line at checkout: product and quantity. The price is
// snapshotted server-side at placement time.
type Line struct {
	ProductID int64
	Quantity  int64
}

// LenderRow = repository shape
type LenderRow = orderrepo.LenderRow

type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, userID int64, total float64, paymentMethod, address string) (int64, error)
	InsertItem(ctx context.Context, tx *sql.Tx, orderID, productID, qty int64, pricePerDay float64) error
	LockStatus(ctx context.Context, tx *sql.Tx, orderID int64) (model.OrderStatus, bool, error)
	SetStatus(ctx context.Context, tx *sql.Tx, orderID int64, status model.OrderStatus) error
	MarkStockReleased(ctx context.Context, tx *sql.Tx, orderID int64) (bool, error)
	Items(ctx context.Context, tx *sql.Tx, orderID int64) ([]model.OrderItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByLender(ctx context.Context, lenderID int64) ([]LenderRow, error)
}

type StockRepo interface {
	Release(ctx context.Context, tx *sql.Tx, productID, qty int64) error
}

type CartRepo interface {
	Clear(ctx context.Context, tx *sql.Tx, userID int64) error
}

type CatalogRepo interface {
	PricePerDay(ctx context.Context, tx *sql.Tx, productID int64) (float64, error)
}

type Roles interface {
	Role(ctx context.Context, userID int64) (string, error)
}

type Service interface {
	// Place converts the cart snapshot into a durable order plus items and
	// clears the cart. Stock was reserved at cart time; none moves here.
	Place(ctx context.Context, userID int64, lines []Line, total float64, paymentMethod, address string) (int64, error)

	// UserOrders lists the renter's orders with their items.
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)

	// Cancel moves the order to Cancelled and hands its reserved stock
	// back, exactly once.
	Cancel(ctx context.Context, orderID int64) error

	// UpdateStatus applies one lifecycle transition; Returned and
	// Cancelled release the order's stock, exactly once.
	UpdateStatus(ctx context.Context, orderID int64, status string) error

	// LenderOrders lists order lines for products owned by the lender.
	LenderOrders(ctx context.Context, lenderID int64) ([]LenderRow, error)
}

// ----- Service implementation -----

type service struct {
	db       TxRunner
	r        Repo
	stock    StockRepo
	cart     CartRepo
	products CatalogRepo
	users    Roles
	pub      events.Publisher
}

func New(db TxRunner, r Repo, stock StockRepo, cart CartRepo, products CatalogRepo, users Roles, pub events.Publisher) Service {
	return &service{db: db, r: r, stock: stock, cart: cart, products: products, users: users, pub: pub}
}

func (s *service) Place(ctx context.Context, userID int64, lines []Line, total float64, paymentMethod, address string) (int64, error) {
	if userID <= 0 || len(lines) == 0 || total <= 0 || address == "" {
		return 0, makeErr(ErrBadInput)
	}
	for _, l := range lines {
		if l.ProductID <= 0 || l.Quantity < 1 {
			return 0, makeErr(ErrBadInput)
		}
	}
	if paymentMethod == "" {
		paymentMethod = model.PaymentCOD
	}

	var orderID int64
	err := s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		id, err := s.r.Insert(ctx, tx, userID, total, paymentMethod, address)
		if err != nil {
			return err
		}
		for _, l := range lines {
			// Snapshot the price at checkout time; later product edits
			// never touch order history.
			price, err := s.products.PricePerDay(ctx, tx, l.ProductID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return makeErr(ErrProductNotFound)
				}
				return err
			}
			if err := s.r.InsertItem(ctx, tx, id, l.ProductID, l.Quantity, price); err != nil {
				return err
			}
		}
		if err := s.cart.Clear(ctx, tx, userID); err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(events.OrderPlaced, map[string]any{
		"orderId": orderID, "userId": userID, "totalAmount": total,
	})
	return orderID, nil
}

func (s *service) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Cancel(ctx context.Context, orderID int64) error {
	err := s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		status, _, err := s.r.LockStatus(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		switch status {
		case model.OrderCancelled:
			return makeErr(ErrAlreadyCancelled)
		case model.OrderDelivered:
			return makeErr(ErrAlreadyDelivered)
		}
		if !model.CanTransition(status, model.OrderCancelled) {
			return makeErr(ErrTerminalState)
		}
		if err := s.r.SetStatus(ctx, tx, orderID, model.OrderCancelled); err != nil {
			return err
		}
		return s.releaseOnce(ctx, tx, orderID)
	})
	if err != nil {
		return err
	}

	s.publish(events.OrderCancelled, map[string]any{"orderId": orderID})
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	next, ok := model.ParseOrderStatus(status)
	if !ok {
		return makeErr(ErrInvalidStatus)
	}

	err := s.db.WithinTx(ctx, func(tx *sql.Tx) error {
		current, _, err := s.r.LockStatus(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if !model.CanTransition(current, next) {
			return makeErr(ErrTerminalState)
		}
		if err := s.r.SetStatus(ctx, tx, orderID, next); err != nil {
			return err
		}
		if next.ReleasesStock() {
			return s.releaseOnce(ctx, tx, orderID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(events.OrderStatusChanged, map[string]any{"orderId": orderID, "status": next})
	return nil
}

// releaseOnce hands every item's reservation back to stock, guarded by the
// order's release marker so a retried cancel/return never double-releases.
func (s *service) releaseOnce(ctx context.Context, tx *sql.Tx, orderID int64) error {
	won, err := s.r.MarkStockReleased(ctx, tx, orderID)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}
	items, err := s.r.Items(ctx, tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.stock.Release(ctx, tx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) LenderOrders(ctx context.Context, lenderID int64) ([]LenderRow, error) {
	role, err := s.users.Role(ctx, lenderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrUserNotFound)
		}
		return nil, err
	}
	if role != model.RoleLender {
		return nil, makeErr(ErrNotLender)
	}
	return s.r.ListByLender(ctx, lenderID)
}

func (s *service) publish(key string, data any) {
	go func() {
		if err := s.pub.Publish(context.Background(), key, data); err != nil {
			slog.Error("publish order event", "key", key, "err", err)
		}
	}()
}
