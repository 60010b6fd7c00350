/*
Package user holds the clinic's account model and its PostgreSQL store.

Password hashing and token issuance happen in the handler layer; this package
only persists and loads accounts.
*/
package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate is returned when the username or email is already taken.
	ErrDuplicate = errors.New("username or email already registered")
)

// User is a registered clinic account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the fields a user may change about themselves.
type ProfileUpdate struct {
	FullName string
	Phone    string
}

// Store persists accounts.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error)
	List(ctx context.Context) ([]User, error)
}
