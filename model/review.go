package model

import "time"

type Review struct {
	ID        int64     `json:"reviewId"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"reviewText"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
