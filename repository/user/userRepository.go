package userrepo

import (
	"context"
	"database/sql"

	"renthub/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Role(ctx context.Context, userID int64) (string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users(user_name, user_phone_number, user_email, user_address, user_password, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING user_id, created_at`,
		u.Name, u.PhoneNumber, u.Email, u.Address, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, user_name, user_phone_number, user_email, user_address, user_password, role, created_at
		FROM users
		WHERE lower(user_email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.Email, &u.Address, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Role(ctx context.Context, userID int64) (string, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT role
		FROM users
		WHERE user_id = $1`,
		userID,
	).Scan(&role)
	return role, err
}
