package event

import "errors"

var (
	// ErrEventNotFound is returned when no event matches the query.
	ErrEventNotFound = errors.New("event not found")
	// ErrNoActiveEvent is returned when no event is marked active and no
	// fallback exists.
	ErrNoActiveEvent = errors.New("no active event")
)
