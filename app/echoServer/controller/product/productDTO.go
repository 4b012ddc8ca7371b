package product

type CreateProductReq struct {
	ProductName   string  `json:"productName" validate:"required"`
	Description   *string `json:"description"`
	Category      string  `json:"category" validate:"required"`
	PricePerDay   float64 `json:"pricePerDay" validate:"required,gt=0"`
	StockQuantity int64   `json:"stockQuantity" validate:"required,gte=0"`
	Availability  *string `json:"availability"`
	ImageURL      string  `json:"imageUrl" validate:"required"`
	AddedByUserID int64   `json:"addedByUserId" validate:"required,gt=0"`
}

type EditProductReq struct {
	ProductName   string  `json:"productName" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	PricePerDay   float64 `json:"pricePerDay" validate:"required,gt=0"`
	StockQuantity int64   `json:"stockQuantity" validate:"gte=0"`
	Availability  string  `json:"availability" validate:"required"`
	ImageURL      string  `json:"imageUrl" validate:"required"`
}
