package auction

import (
	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// Caller is the authenticated identity behind a command, established by the
// auth layer. The coordinator only checks roles and ownership, never
// credentials.
type Caller struct {
	UserID        uuid.UUID
	Role          models.UserRole
	Authenticated bool
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Authenticated && c.Role == models.UserRoleAdmin
}

// TeamSnapshot is the slice of a team record a bid decision needs.
type TeamSnapshot struct {
	ID              uuid.UUID
	Name            string
	OwnerID         uuid.UUID
	EventID         uuid.UUID
	RemainingBudget int64
	RosterRoles     []models.PlayerRole
}

// SessionView is the slice of session state a bid decision needs.
type SessionView struct {
	Active     bool
	HighestBid int64
	LotRole    models.PlayerRole
	LotEventID uuid.UUID
}

// RejectReason names why a bid was refused. Only RejectUnauthenticated and
// RejectNotOwner surface to the bidder; the rest are silent no-ops, which is
// the deliberate client-facing contract, not an oversight.
type RejectReason string

const (
	RejectNone               RejectReason = ""
	RejectSessionInactive    RejectReason = "session_inactive"
	RejectAmountNotAboveHigh RejectReason = "amount_not_above_highest"
	RejectUnauthenticated    RejectReason = "unauthenticated"
	RejectNotOwner           RejectReason = "not_team_owner"
	RejectInsufficientBudget RejectReason = "insufficient_budget"
	RejectWrongEvent         RejectReason = "team_wrong_event"
	RejectRoleQuota          RejectReason = "role_quota_reached"
)

// Decision is the outcome of validating a proposed bid.
type Decision struct {
	Accepted bool
	Reason   RejectReason
}

func accept() Decision                    { return Decision{Accepted: true} }
func reject(reason RejectReason) Decision { return Decision{Reason: reason} }

// Decide validates a proposed bid. It is deterministic and side-effect-free;
// checks short-circuit in contract order, so an inactive session or a
// non-increasing amount is reported before any authorization concern.
func Decide(view SessionView, team *TeamSnapshot, limits models.RoleLimits, amount int64, caller Caller) Decision {
	if !view.Active {
		return reject(RejectSessionInactive)
	}
	if amount <= view.HighestBid {
		return reject(RejectAmountNotAboveHigh)
	}
	if !caller.Authenticated {
		return reject(RejectUnauthenticated)
	}
	if !caller.IsAdmin() && team.OwnerID != caller.UserID {
		return reject(RejectNotOwner)
	}
	if team.RemainingBudget < amount {
		return reject(RejectInsufficientBudget)
	}
	if team.EventID != view.LotEventID {
		return reject(RejectWrongEvent)
	}
	if limit := limits.LimitFor(view.LotRole); limit > 0 {
		count := 0
		for _, role := range team.RosterRoles {
			if role == view.LotRole {
				count++
			}
		}
		if count >= limit {
			return reject(RejectRoleQuota)
		}
	}
	return accept()
}
