package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// matchSpacing is the gap between consecutive scheduled matches.
const matchSpacing = 2 * time.Hour

// TeamLister returns the teams competing in an event.
type TeamLister interface {
	ListTeamsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Team, error)
}

// EventGetter resolves the event whose schedule is being built.
type EventGetter interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// App maintains the round-robin match schedule for an event.
type App struct {
	repo   *Repository
	teams  TeamLister
	events EventGetter
	clock  clockwork.Clock
}

func NewApp(repo *Repository, teams TeamLister, events EventGetter, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{repo: repo, teams: teams, events: events, clock: clock}
}

// SyncFixtures brings the schedule up to date with the event's current
// teams: every unpaired team combination gets a new League fixture appended
// after the existing ones. Existing fixtures are never touched, so calling
// this after every team registration is safe.
func (a *App) SyncFixtures(ctx context.Context, eventID uuid.UUID) ([]models.MatchFixture, error) {
	teams, err := a.teams.ListTeamsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	existing, err := a.repo.ListFixturesByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(teams) < 2 {
		return existing, nil
	}

	event, err := a.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	firstMatch := a.clock.Now().Add(24 * time.Hour).Truncate(time.Hour)
	if event.StartTime != nil {
		firstMatch = *event.StartTime
	}

	ids := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}

	added := buildMissingFixtures(eventID, ids, existing, firstMatch)
	if len(added) > 0 {
		if err := a.repo.InsertFixtures(ctx, added); err != nil {
			return nil, err
		}
	}
	return append(existing, added...), nil
}

func (a *App) ListFixtures(ctx context.Context, eventID uuid.UUID) ([]models.MatchFixture, error) {
	return a.repo.ListFixturesByEvent(ctx, eventID)
}

// buildMissingFixtures pairs every team against every other team once,
// skipping pairs already scheduled. New matches continue the slot sequence
// at a fixed spacing from the first match time. Deterministic for a given
// team order.
func buildMissingFixtures(eventID uuid.UUID, teamIDs []uuid.UUID, existing []models.MatchFixture, firstMatch time.Time) []models.MatchFixture {
	seen := make(map[[2]uuid.UUID]bool, len(existing)*2)
	for _, f := range existing {
		seen[[2]uuid.UUID{f.HomeTeamID, f.AwayTeamID}] = true
		seen[[2]uuid.UUID{f.AwayTeamID, f.HomeTeamID}] = true
	}

	var added []models.MatchFixture
	slot := len(existing)
	for i := 0; i < len(teamIDs); i++ {
		for j := i + 1; j < len(teamIDs); j++ {
			if seen[[2]uuid.UUID{teamIDs[i], teamIDs[j]}] {
				continue
			}
			added = append(added, models.MatchFixture{
				ID:         uuid.New(),
				EventID:    eventID,
				HomeTeamID: teamIDs[i],
				AwayTeamID: teamIDs[j],
				StartTime:  firstMatch.Add(time.Duration(slot) * matchSpacing),
				Type:       models.MatchTypeLeague,
			})
			slot++
		}
	}
	return added
}
