package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const teamColumns = `id, name, logo_url, owner_id, event_id, budget, remaining_budget, created_at`

type insertTeamParams struct {
	Name    string
	LogoURL string
	OwnerID uuid.UUID
	EventID uuid.UUID
	Budget  int64
}

func (r *Repository) InsertTeam(ctx context.Context, params insertTeamParams) (*models.Team, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO teams (id, name, logo_url, owner_id, event_id, budget, remaining_budget, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6, now())
		RETURNING `+teamColumns,
		uuid.New(), params.Name, params.LogoURL, params.OwnerID, params.EventID, params.Budget)

	t, err := scanTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}
	return t, nil
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

func (r *Repository) GetTeamByOwnerAndEvent(ctx context.Context, ownerID, eventID uuid.UUID) (*models.Team, error) {
	row := r.db.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE owner_id = $1 AND event_id = $2`, ownerID, eventID)
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by owner: %w", err)
	}
	return t, nil
}

func (r *Repository) ListTeamsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Team, error) {
	rows, err := r.db.Query(ctx, `SELECT `+teamColumns+` FROM teams WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// GetRoster returns a team's acquisitions, most recent first.
func (r *Repository) GetRoster(ctx context.Context, teamID uuid.UUID) ([]models.RosterEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT tr.player_id, p.name, p.role, tr.price, tr.acquired_at
		FROM team_rosters tr
		JOIN players p ON p.id = tr.player_id
		WHERE tr.team_id = $1
		ORDER BY tr.acquired_at DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}
	defer rows.Close()

	var out []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Role, &e.Price, &e.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountRosterByRole returns how many players of each role a team holds.
func (r *Repository) CountRosterByRole(ctx context.Context, teamID uuid.UUID) (map[models.PlayerRole]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.role, COUNT(*)
		FROM team_rosters tr
		JOIN players p ON p.id = tr.player_id
		WHERE tr.team_id = $1
		GROUP BY p.role`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roster roles: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.PlayerRole]int)
	for rows.Next() {
		var role models.PlayerRole
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.Name, &t.LogoURL, &t.OwnerID, &t.EventID, &t.Budget, &t.RemainingBudget, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
