package reviewsvc

import (
	"context"
	"errors"

	"renthub/model"
	reviewrepo "renthub/repository/review"
)

type ErrCode string

const (
	ErrBadInput        ErrCode = "BAD_INPUT"
	ErrOrderNotFound   ErrCode = "ORDER_NOT_FOUND"
	ErrProductNotFound ErrCode = "PRODUCT_NOT_FOUND"
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrDuplicate       ErrCode = "ALREADY_REVIEWED"
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

type Service interface {
	Submit(ctx context.Context, orderID, productID, userID int64, text string, rating int) (int64, error)
	ByProduct(ctx context.Context, productID int64) ([]model.Review, error)
	Random(ctx context.Context, n int) ([]model.Review, error)
}

type service struct{ r reviewrepo.Repo }

func New(r reviewrepo.Repo) Service { return &service{r: r} }

func (s *service) Submit(ctx context.Context, orderID, productID, userID int64, text string, rating int) (int64, error) {
	if text == "" || rating < 1 || rating > 5 || orderID <= 0 || productID <= 0 || userID <= 0 {
		return 0, makeErr(ErrBadInput)
	}

	ok, err := s.r.OrderExists(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrOrderNotFound)
	}

	ok, err = s.r.ProductExists(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrProductNotFound)
	}

	ok, err = s.r.UserExists(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, makeErr(ErrUserNotFound)
	}

	reviewed, err := s.r.AlreadyReviewed(ctx, orderID, productID, userID)
	if err != nil {
		return 0, err
	}
	if reviewed {
		return 0, makeErr(ErrDuplicate)
	}

	return s.r.Insert(ctx, orderID, productID, userID, text, rating)
}

func (s *service) ByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	return s.r.ByProduct(ctx, productID)
}

func (s *service) Random(ctx context.Context, n int) ([]model.Review, error) {
	return s.r.Random(ctx, n)
}
