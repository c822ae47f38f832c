package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleLimits caps how many players of a role a team may acquire.
// A missing role or a limit of zero means unlimited.
type RoleLimits map[PlayerRole]int

// LimitFor returns the configured cap for a role, zero when unlimited.
func (rl RoleLimits) LimitFor(role PlayerRole) int {
	if rl == nil {
		return 0
	}
	return rl[role]
}

// Event represents a tournament. At most one event is active at a time;
// the active event is the one whose players go under the hammer.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	TeamBudget  int64      `json:"team_budget"`
	RoleLimits  RoleLimits `json:"role_limits"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}
