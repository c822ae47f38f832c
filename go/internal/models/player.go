package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerRole defines the on-field role of a player.
type PlayerRole string

const (
	PlayerRoleBatsman      PlayerRole = "Batsman"
	PlayerRoleBowler       PlayerRole = "Bowler"
	PlayerRoleAllRounder   PlayerRole = "All-Rounder"
	PlayerRoleWicketkeeper PlayerRole = "Wicketkeeper"
)

// PlayerStatus defines where a player sits in the auction lifecycle.
type PlayerStatus string

const (
	PlayerStatusPending  PlayerStatus = "Pending"
	PlayerStatusApproved PlayerStatus = "Approved"
	PlayerStatusSold     PlayerStatus = "Sold"
	PlayerStatusUnsold   PlayerStatus = "Unsold"
)

// PlayerStats holds career numbers shown on the auction card.
type PlayerStats struct {
	Matches int     `json:"matches"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Rating  float64 `json:"rating"`
}

// Player represents a registered player profile for an event. A player in
// Approved status is eligible to be offered as an auction lot.
type Player struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"` // registrant identity
	EventID      uuid.UUID    `json:"event_id"`
	Name         string       `json:"name"`
	Age          int          `json:"age"`
	PhotoURL     string       `json:"photo_url,omitempty"`
	Role         PlayerRole   `json:"role"`
	BasePrice    int64        `json:"base_price"`
	CurrentPrice int64        `json:"current_price"`
	Stats        PlayerStats  `json:"stats"`
	Status       PlayerStatus `json:"status"`
	WonBy        *uuid.UUID   `json:"won_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
