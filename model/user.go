package model

import "time"

type User struct {
	ID           int64     `json:"userId"`
	Name         string    `json:"userName"`
	PhoneNumber  string    `json:"userPhoneNumber"`
	Email        string    `json:"userEmail"`
	Address      string    `json:"userAddress"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

const (
	RoleRenter = "renter"
	RoleLender = "lender"
)

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	UserName        string `json:"userName" validate:"required"`
	UserPhoneNumber string `json:"userPhoneNumber" validate:"required,len=10,numeric"`
	UserEmail       string `json:"userEmail" validate:"required,email"`
	UserAddress     string `json:"userAddress" validate:"required"`
	UserPassword    string `json:"userPassword" validate:"required,min=6"`
	Role            string `json:"role" validate:"omitempty,oneof=renter lender"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
