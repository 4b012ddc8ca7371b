package productsvc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"renthub/model"
	productrepo "renthub/repository/product"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "PRODUCT_NOT_FOUND"
	ErrBadInput ErrCode = "BAD_INPUT"
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

// NewProduct = repository shape
type NewProduct = productrepo.NewProduct

// Update = repository shape
type Update = productrepo.Update

const detailCacheTTL = 30 * time.Second

type Service interface {
	Create(ctx context.Context, p NewProduct) (int64, error)
	Detail(ctx context.Context, id int64) (*model.Product, error)
	ByLender(ctx context.Context, lenderID int64) ([]model.Product, error)
	Search(ctx context.Context, term string) ([]model.Product, error)
	Random(ctx context.Context, n int) ([]model.Product, error)
	Update(ctx context.Context, id int64, u Update) error
	Deactivate(ctx context.Context, id int64) error
}

type service struct {
	r     productrepo.Repo
	cache *redis.Client // optional; detail reads only, never stock decisions
}

func New(r productrepo.Repo, cache *redis.Client) Service {
	return &service{r: r, cache: cache}
}

func (s *service) Create(ctx context.Context, p NewProduct) (int64, error) {
	if p.Name == "" || p.Category == "" || p.PricePerDay <= 0 || p.StockQuantity < 0 || p.AddedByUserID <= 0 {
		return 0, makeErr(ErrBadInput)
	}
	return s.r.Create(ctx, p)
}

func cacheKey(id int64) string { return fmt.Sprintf("product:%d", id) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey(id)).Result(); err == nil {
			var p model.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			s.cache.Set(ctx, cacheKey(id), data, detailCacheTTL)
		}
	}
	return p, nil
}

func (s *service) ByLender(ctx context.Context, lenderID int64) ([]model.Product, error) {
	return s.r.ByLender(ctx, lenderID)
}

func (s *service) Search(ctx context.Context, term string) ([]model.Product, error) {
	if term == "" {
		return nil, makeErr(ErrBadInput)
	}
	return s.r.Search(ctx, term)
}

func (s *service) Random(ctx context.Context, n int) ([]model.Product, error) {
	return s.r.RandomActive(ctx, n)
}

func (s *service) Update(ctx context.Context, id int64, u Update) error {
	if u.Name == "" || u.Category == "" || u.PricePerDay <= 0 || u.StockQuantity < 0 {
		return makeErr(ErrBadInput)
	}
	if err := s.r.Update(ctx, id, u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	if err := s.r.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(id))
	}
}
