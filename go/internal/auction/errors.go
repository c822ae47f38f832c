package auction

import "errors"

// Explicit rejections returned to the originating caller. Everything else a
// bid can do wrong is a silent no-op; see Decide.
var (
	// ErrUnauthorized covers unauthenticated callers and non-admin start
	// attempts.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrNotTeamOwner is returned when a non-admin bids for a team they do
	// not own.
	ErrNotTeamOwner = errors.New("caller does not own this team")

	// ErrSessionBusy is returned for a start command while a lot is active
	// or settling.
	ErrSessionBusy = errors.New("another lot is already active")

	// ErrLotNotApproved is returned when the requested lot is not in
	// Approved status.
	ErrLotNotApproved = errors.New("lot is not approved for auction")

	// ErrLotWrongEvent is returned when the requested lot does not belong
	// to the currently active event.
	ErrLotWrongEvent = errors.New("lot does not belong to the active event")

	// ErrNoActiveEvent is returned when no event is marked active.
	ErrNoActiveEvent = errors.New("no active event")
)
