package teams

import "errors"

var (
	// ErrTeamNotFound is returned when no team matches the query.
	ErrTeamNotFound = errors.New("team not found")
	// ErrOwnerHasTeam is returned when an owner registers a second team for
	// the same event.
	ErrOwnerHasTeam = errors.New("owner already has a team for this event")
)
