package domain

import (
	"errors"
	"time"
)

// ErrLoginRequired is returned when a mutation that needs an authenticated
// session is attempted without one. Callers surface it as a "please login"
// prompt; nothing is mutated.
var ErrLoginRequired = errors.New("login required")

// ErrAccountNotFound is returned when no account matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailTaken is returned when registering with an email already in use.
var ErrEmailTaken = errors.New("email already registered")

// User is the public identity of a shopper, the record held by an active
// session and read by the cart and favorites containers for gating.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Account is the stored credential record behind a user. Accounts live in
// memory only; the storefront has no server-persisted account database.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User derives the public identity from an account.
func (a *Account) User() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email}
}

// AccountRepository defines the contract for account storage.
type AccountRepository interface {
	Create(account *Account) error
	FindByID(id string) (*Account, error)
	FindByEmail(email string) (*Account, error)
	Update(account *Account) error
	Count() (int64, error)
}
