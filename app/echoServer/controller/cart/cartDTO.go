package cart

type AddToCartReq struct {
	UserID    int64 `json:"userId" validate:"required,gt=0"`
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

type UpdateQuantityReq struct {
	CartID      int64 `json:"cartId" validate:"required,gt=0"`
	NewQuantity int64 `json:"newQuantity" validate:"required,gte=1"`
}
