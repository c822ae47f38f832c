package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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

type CreateEventRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	StartTime   *time.Time        `json:"start_time"`
	EndTime     *time.Time        `json:"end_time"`
	TeamBudget  int64             `json:"team_budget"`
	RoleLimits  models.RoleLimits `json:"role_limits"`
}

const eventColumns = `id, name, description, start_time, end_time, team_budget, role_limits, is_active, created_at`

func (r *Repository) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	limits, err := json.Marshal(req.RoleLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode role limits: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO events (id, name, description, start_time, end_time, team_budget, role_limits, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, now())
		RETURNING `+eventColumns,
		uuid.New(), req.Name, req.Description, req.StartTime, req.EndTime, req.TeamBudget, limits)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *Repository) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// GetActiveEvent returns the event marked active, falling back to the
// oldest event when none is.
func (r *Repository) GetActiveEvent(ctx context.Context) (*models.Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE is_active ORDER BY created_at DESC LIMIT 1`)
	event, err := scanEvent(row)
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}

	row = r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at ASC LIMIT 1`)
	event, err = scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveEvent
		}
		return nil, fmt.Errorf("failed to get fallback event: %w", err)
	}
	return event, nil
}

// ActivateEvent marks one event active and every other event inactive, in
// a single transaction.
func (r *Repository) ActivateEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event *models.Event
	err := sqlutil.Run(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE events SET is_active = false WHERE is_active`); err != nil {
			return fmt.Errorf("failed to deactivate events: %w", err)
		}
		row := tx.QueryRow(ctx, `UPDATE events SET is_active = true WHERE id = $1 RETURNING `+eventColumns, id)
		e, err := scanEvent(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrEventNotFound
			}
			return fmt.Errorf("failed to activate event: %w", err)
		}
		event = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var limits []byte
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.StartTime, &e.EndTime, &e.TeamBudget, &limits, &e.IsActive, &e.CreatedAt); err != nil {
		return nil, err
	}
	if len(limits) > 0 {
		if err := json.Unmarshal(limits, &e.RoleLimits); err != nil {
			return nil, fmt.Errorf("failed to decode role limits: %w", err)
		}
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	var out []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
