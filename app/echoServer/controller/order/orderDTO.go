package order

type CartItemReq struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

type PlaceOrderReq struct {
	UserID        int64         `json:"userId" validate:"omitempty,gt=0"`
	CartItems     []CartItemReq `json:"cartItems" validate:"required,min=1,dive"`
	TotalAmount   float64       `json:"totalAmount" validate:"required,gt=0"`
	PaymentMethod string        `json:"paymentMethod"`
	Address       string        `json:"address" validate:"required"`
}
