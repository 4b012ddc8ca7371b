package review

type SubmitReviewReq struct {
	OrderID   int64  `json:"orderId" validate:"required,gt=0"`
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	UserID    int64  `json:"userId" validate:"required,gt=0"`
	Review    string `json:"review" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
}
