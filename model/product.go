// model/product.go
package model

import "time"

type ProductStatus string

const (
	ProductPending  ProductStatus = "pending"
	ProductApproved ProductStatus = "approved"
)

type Product struct {
	ID            int64         `json:"productId"`
	Name          string        `json:"productName"`
	Description   *string       `json:"description,omitempty"`
	Category      string        `json:"category"`
	PricePerDay   float64       `json:"pricePerDay"`
	StockQuantity int64         `json:"stockQuantity"`
	Availability  *string       `json:"availability,omitempty"`
	ImageURL      string        `json:"imageUrl"`
	AddedByUserID int64         `json:"addedByUserId"`
	Status        ProductStatus `json:"status"`
	IsActive      bool          `json:"isActive"`
	LenderName    string        `json:"lenderName,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
