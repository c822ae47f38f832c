package player

import (
	"context"
	"encoding/json"
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

const playerColumns = `id, user_id, event_id, name, age, photo_url, role, base_price, current_price, stats, status, won_by, created_at`

type insertPlayerParams struct {
	UserID    uuid.UUID
	EventID   uuid.UUID
	Name      string
	Age       int
	PhotoURL  string
	Role      models.PlayerRole
	BasePrice int64
	Stats     models.PlayerStats
	Status    models.PlayerStatus
}

func (r *Repository) InsertPlayer(ctx context.Context, params insertPlayerParams) (*models.Player, error) {
	stats, err := json.Marshal(params.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO players (id, user_id, event_id, name, age, photo_url, role, base_price, current_price, stats, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $10, now())
		RETURNING `+playerColumns,
		uuid.New(), params.UserID, params.EventID, params.Name, params.Age, params.PhotoURL,
		params.Role, params.BasePrice, stats, params.Status)

	p, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	return p, nil
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (r *Repository) GetPlayerByUserAndEvent(ctx context.Context, userID, eventID uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE user_id = $1 AND event_id = $2`, userID, eventID)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by user: %w", err)
	}
	return p, nil
}

func (r *Repository) ListPlayersByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Player, error) {
	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM players WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (r *Repository) ListPlayersByStatus(ctx context.Context, eventID uuid.UUID, status models.PlayerStatus) ([]models.Player, error) {
	rows, err := r.db.Query(ctx, `SELECT `+playerColumns+` FROM players WHERE event_id = $1 AND status = $2 ORDER BY created_at ASC`, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by status: %w", err)
	}
	defer rows.Close()
	return collectPlayers(rows)
}

// UpdateProfile rewrites a profile's editable fields. The asking price
// follows the base price because only unapproved profiles are editable.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, params insertPlayerParams) (*models.Player, error) {
	stats, err := json.Marshal(params.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE players
		SET name = $2, age = $3, photo_url = $4, role = $5, base_price = $6, current_price = $6, stats = $7
		WHERE id = $1
		RETURNING `+playerColumns,
		id, params.Name, params.Age, params.PhotoURL, params.Role, params.BasePrice, stats)

	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player profile: %w", err)
	}
	return p, nil
}

func (r *Repository) UpdatePlayerStatus(ctx context.Context, id uuid.UUID, status models.PlayerStatus) (*models.Player, error) {
	row := r.db.QueryRow(ctx, `UPDATE players SET status = $2 WHERE id = $1 RETURNING `+playerColumns, id, status)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player status: %w", err)
	}
	return p, nil
}

// ResetForReauction puts a player back on the block: status Approved,
// price back to base, prior winner cleared.
func (r *Repository) ResetForReauction(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE players
		SET status = $2, current_price = base_price, won_by = NULL
		WHERE id = $1
		RETURNING `+playerColumns, id, models.PlayerStatusApproved)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to reset player: %w", err)
	}
	return p, nil
}

func (r *Repository) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	var stats []byte
	if err := row.Scan(&p.ID, &p.UserID, &p.EventID, &p.Name, &p.Age, &p.PhotoURL, &p.Role,
		&p.BasePrice, &p.CurrentPrice, &stats, &p.Status, &p.WonBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &p.Stats); err != nil {
			return nil, fmt.Errorf("failed to decode stats: %w", err)
		}
	}
	return &p, nil
}

func collectPlayers(rows pgx.Rows) ([]models.Player, error) {
	var out []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
