// internal/services/errors.go
package services

import "errors"

// Sentinel errors for the client-visible failure categories. Handlers
// map these to HTTP statuses with errors.Is; everything else is treated
// as an internal error.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")

	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrProfileNameTaken = errors.New("profile name already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
)
