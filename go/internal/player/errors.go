package player

import "errors"

var (
	// ErrPlayerNotFound is returned when no player matches the query.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrAlreadyRegistered is returned when a user registers twice for the
	// same event.
	ErrAlreadyRegistered = errors.New("player already registered for this event")
	// ErrRegistrationClosed is returned when no event is open for
	// registration.
	ErrRegistrationClosed = errors.New("registration is closed")
)
