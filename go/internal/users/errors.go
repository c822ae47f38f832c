package users

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the query.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for a failed login. It never says
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
