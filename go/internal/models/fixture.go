package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchType defines the stage of a scheduled match.
type MatchType string

const (
	MatchTypeLeague   MatchType = "League"
	MatchTypeKnockout MatchType = "Knockout"
)

// MatchFixture is a scheduled pairing between two teams of an event.
type MatchFixture struct {
	ID         uuid.UUID `json:"id"`
	EventID    uuid.UUID `json:"event_id"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	StartTime  time.Time `json:"start_time"`
	Type       MatchType `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
