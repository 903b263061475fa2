package account

import (
	"errors"
	"time"
)

// User represents a registered dashboard account.
//
// Users are immutable after registration: there are no update or delete
// operations, and the password hash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for account operations.
var (
	// ErrValidation is returned when a required registration field is empty.
	ErrValidation = errors.New("account: missing required field")

	// ErrUsernameExists is returned when registering an already-taken username.
	ErrUsernameExists = errors.New("account: username already exists")

	// ErrUserNotFound is returned when a username or id does not exist.
	ErrUserNotFound = errors.New("account: user not found")

	// ErrBadCredentials is returned when the password does not match.
	ErrBadCredentials = errors.New("account: incorrect password")
)
