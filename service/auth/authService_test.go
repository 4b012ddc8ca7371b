package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"renthub/model"
	userrepo "renthub/repository/user"
	"renthub/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
	roleFn    func(ctx context.Context, userID int64) (string, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) Role(ctx context.Context, userID int64) (string, error) {
	if m.roleFn == nil {
		return "", nil
	}
	return m.roleFn(ctx, userID)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	req := model.RegisterReq{
		UserName:        "Sari Putri",
		UserPhoneNumber: "0812345678",
		UserEmail:       "USER@Example.COM",
		UserAddress:     "Jl. Melati 5",
		UserPassword:    "supersecret",
	}

	u, tok, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, model.RoleRenter, u.Role)
	require.NotEmpty(t, u.PasswordHash)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{UserEmail: " ", UserPassword: "123456"})
	require.Equal(t, ErrBadInput, Code(err))

	_, _, err = svc.Register(ctx, model.RegisterReq{UserEmail: "a@b.c", UserPassword: " "})
	require.Equal(t, ErrBadInput, Code(err))

	_, _, err = svc.Register(ctx, model.RegisterReq{UserEmail: "a@b.c", UserPassword: "123456", Role: "admin"})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_user_email_key"}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{UserEmail: "taken@example.com", UserPassword: "123456"})
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_DuplicatePhone(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_user_phone_number_key"}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{UserEmail: "new@example.com", UserPassword: "123456"})
	require.Equal(t, ErrPhoneTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error { return boom },
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{UserEmail: "a@b.c", UserPassword: "123456"})
	require.ErrorIs(t, err, boom)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, Role: model.RoleLender, PasswordHash: mustHash(t, "supersecret")}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Email: "user@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.NotEmpty(t, tok)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 7, Email: email, PasswordHash: mustHash(t, "supersecret")}, nil
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Email: "user@example.com", Password: "wrong"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, sql.ErrNoRows
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Email: "nobody@example.com", Password: "x"})
	require.Equal(t, ErrInvalidCreds, Code(err))
}
