package fixture

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/mcdev12/ipl-auction/go/internal/sqlutil"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const fixtureColumns = `id, event_id, home_team_id, away_team_id, start_time, type, created_at`

// InsertFixtures writes a batch of fixtures in one transaction.
func (r *Repository) InsertFixtures(ctx context.Context, fixtures []models.MatchFixture) error {
	return sqlutil.Run(ctx, r.db, func(tx pgx.Tx) error {
		for _, f := range fixtures {
			if _, err := tx.Exec(ctx, `
				INSERT INTO match_fixtures (id, event_id, home_team_id, away_team_id, start_time, type, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, now())`,
				f.ID, f.EventID, f.HomeTeamID, f.AwayTeamID, f.StartTime, f.Type); err != nil {
				return fmt.Errorf("failed to insert fixture: %w", err)
			}
		}
		return nil
	})
}

func (r *Repository) ListFixturesByEvent(ctx context.Context, eventID uuid.UUID) ([]models.MatchFixture, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+fixtureColumns+`
		FROM match_fixtures
		WHERE event_id = $1
		ORDER BY start_time ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}
	defer rows.Close()

	var out []models.MatchFixture
	for rows.Next() {
		var f models.MatchFixture
		if err := rows.Scan(&f.ID, &f.EventID, &f.HomeTeamID, &f.AwayTeamID, &f.StartTime, &f.Type, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

