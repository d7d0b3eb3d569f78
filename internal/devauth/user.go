// Package devauth is a development stand-in for the remote auth and bills
// payment services. It issues HS256 tokens for seeded users and accepts the
// post-login seed call.
package devauth

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Demo account seeded at startup.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password123"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// User is an account known to the dev server. PasswordHash never leaves the
// package in a response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        *string   `json:"phone,omitempty"`
	Balance      *float64  `json:"balance,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Bill is a demo bill created by the seed endpoint.
type Bill struct {
	ID       string  `json:"id"`
	Biller   string  `json:"biller"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	DueDate  string  `json:"dueDate"`
}
