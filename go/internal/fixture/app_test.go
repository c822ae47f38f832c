package fixture

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/peterldowns/testy/check"
)

func TestBuildMissingFixtures_RoundRobinPairsEveryTeamOnce(t *testing.T) {
	eventID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	firstMatch := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	fixtures := buildMissingFixtures(eventID, teamIDs, nil, firstMatch)

	// 4 teams -> C(4,2) = 6 matches.
	check.Equal(t, 6, len(fixtures))

	seen := make(map[[2]uuid.UUID]bool)
	for _, f := range fixtures {
		check.Equal(t, eventID, f.EventID)
		check.Equal(t, models.MatchTypeLeague, f.Type)
		check.False(t, f.HomeTeamID == f.AwayTeamID)

		pair := [2]uuid.UUID{f.HomeTeamID, f.AwayTeamID}
		reverse := [2]uuid.UUID{f.AwayTeamID, f.HomeTeamID}
		check.False(t, seen[pair] || seen[reverse])
		seen[pair] = true
	}
}

func TestBuildMissingFixtures_SpacesMatchesTwoHoursApart(t *testing.T) {
	eventID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	firstMatch := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	fixtures := buildMissingFixtures(eventID, teamIDs, nil, firstMatch)

	check.Equal(t, 3, len(fixtures))
	for i, f := range fixtures {
		check.Equal(t, firstMatch.Add(time.Duration(i)*matchSpacing), f.StartTime)
	}
}

func TestBuildMissingFixtures_LateTeamOnlyAddsNewPairs(t *testing.T) {
	eventID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	firstMatch := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	existing := buildMissingFixtures(eventID, []uuid.UUID{a, b}, nil, firstMatch)
	check.Equal(t, 1, len(existing))

	// Team c registers later: only a-c and b-c are added, slotted after the
	// already scheduled match.
	added := buildMissingFixtures(eventID, []uuid.UUID{a, b, c}, existing, firstMatch)

	check.Equal(t, 2, len(added))
	for i, f := range added {
		check.Equal(t, c, f.AwayTeamID)
		check.Equal(t, firstMatch.Add(time.Duration(len(existing)+i)*matchSpacing), f.StartTime)
	}
}

func TestBuildMissingFixtures_NoopWhenScheduleComplete(t *testing.T) {
	eventID := uuid.New()
	teamIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	firstMatch := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	existing := buildMissingFixtures(eventID, teamIDs, nil, firstMatch)
	added := buildMissingFixtures(eventID, teamIDs, existing, firstMatch)

	check.Equal(t, 0, len(added))
}
