// model/order.go
package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderReturned  OrderStatus = "Returned"
	OrderCancelled OrderStatus = "Cancelled"
)

// PaymentCOD is the only supported payment method.
const PaymentCOD = "Cash on Delivery"

// ParseOrderStatus validates a status token from a request.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderShipped, OrderDelivered, OrderReturned, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// transitions is the full lifecycle table. Delivered, Returned and Cancelled
// are terminal: they map to nothing.
var transitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderReturned, OrderCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// ReleasesStock reports whether entering s hands the order's reserved units
// back to the stock ledger.
func (s OrderStatus) ReleasesStock() bool {
	return s == OrderCancelled || s == OrderReturned
}

type Order struct {
	ID            int64       `json:"orderId"`
	UserID        int64       `json:"userId"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
	Address       string      `json:"address"`
	Status        OrderStatus `json:"status"`
	StockReleased bool        `json:"-"`
	OrderDate     time.Time   `json:"orderDate"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem is immutable after creation; PricePerDay is the price at
// checkout time, independent of later product edits.
type OrderItem struct {
	OrderID     int64   `json:"orderId,omitempty"`
	ProductID   int64   `json:"productId"`
	Quantity    int64   `json:"quantity"`
	PricePerDay float64 `json:"pricePerDay"`
}
