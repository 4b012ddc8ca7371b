package wishlistsvc

import (
	"context"
	"errors"

	wishlistrepo "renthub/repository/wishlist"
)

type ErrCode string

const (
	ErrDuplicate ErrCode = "ALREADY_IN_WISHLIST"
	ErrNotFound  ErrCode = "NOT_IN_WISHLIST"
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

// Row = repository shape
type Row = wishlistrepo.Row

type Service interface {
	Add(ctx context.Context, userID, productID int64) (int64, error)
	List(ctx context.Context, userID int64) ([]Row, error)
	Remove(ctx context.Context, userID, productID int64) error
}

type service struct{ r wishlistrepo.Repo }

func New(r wishlistrepo.Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, userID, productID int64) (int64, error) {
	exists, err := s.r.Exists(ctx, userID, productID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, makeErr(ErrDuplicate)
	}
	return s.r.Insert(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID int64) ([]Row, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, productID int64) error {
	deleted, err := s.r.Delete(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound)
	}
	return nil
}
