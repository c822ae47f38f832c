package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a franchise competing in an event's auction.
type Team struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	LogoURL         string        `json:"logo_url,omitempty"`
	OwnerID         uuid.UUID     `json:"owner_id"`
	EventID         uuid.UUID     `json:"event_id"`
	Budget          int64         `json:"budget"`
	RemainingBudget int64         `json:"remaining_budget"`
	Roster          []RosterEntry `json:"roster,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// RosterEntry is one player acquired by a team at auction.
type RosterEntry struct {
	PlayerID   uuid.UUID  `json:"player_id"`
	PlayerName string     `json:"player_name"`
	Role       PlayerRole `json:"role"`
	Price      int64      `json:"price"`
	AcquiredAt time.Time  `json:"acquired_at"`
}
