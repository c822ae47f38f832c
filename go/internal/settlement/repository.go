package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/ipl-auction/go/internal/models"
	"github.com/mcdev12/ipl-auction/go/internal/sqlutil"
)

// ErrInsufficientBudget is returned when the winning team's budget, re-read
// under lock at settlement time, no longer covers the hammer price.
var ErrInsufficientBudget = errors.New("insufficient budget at settlement")

// Repository performs the durable side of lot finalization. Every write of a
// settlement happens in one transaction: either the team is debited, the
// roster grows, the player flips to Sold and the ledger records the sale, or
// none of it happened.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SettleLot commits a winning bid. The team row is locked and its budget
// re-checked before the debit; a budget that moved since the bid was
// accepted fails the whole settlement with ErrInsufficientBudget.
func (r *Repository) SettleLot(ctx context.Context, lotID, teamID uuid.UUID, amount int64) error {
	return sqlutil.Run(ctx, r.db, func(tx pgx.Tx) error {
		var remaining int64
		err := tx.QueryRow(ctx, `SELECT remaining_budget FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&remaining)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("settlement team %s not found", teamID)
			}
			return fmt.Errorf("failed to lock team: %w", err)
		}
		if remaining < amount {
			return ErrInsufficientBudget
		}

		if _, err := tx.Exec(ctx, `UPDATE teams SET remaining_budget = remaining_budget - $2 WHERE id = $1`, teamID, amount); err != nil {
			return fmt.Errorf("failed to debit team: %w", err)
		}

		var eventID uuid.UUID
		err = tx.QueryRow(ctx, `
			UPDATE players
			SET status = $2, current_price = $3, won_by = $4
			WHERE id = $1
			RETURNING event_id`,
			lotID, models.PlayerStatusSold, amount, teamID).Scan(&eventID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("settlement lot %s not found", lotID)
			}
			return fmt.Errorf("failed to mark player sold: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO team_rosters (id, team_id, player_id, price, acquired_at)
			VALUES ($1, $2, $3, $4, now())`,
			uuid.New(), teamID, lotID, amount); err != nil {
			return fmt.Errorf("failed to append roster entry: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO bids (id, event_id, player_id, team_id, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, now())`,
			uuid.New(), eventID, lotID, teamID, amount); err != nil {
			return fmt.Errorf("failed to write bid ledger: %w", err)
		}
		return nil
	})
}

// MarkUnsold records that a lot closed with no winner.
func (r *Repository) MarkUnsold(ctx context.Context, lotID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE players SET status = $2, won_by = NULL WHERE id = $1`,
		lotID, models.PlayerStatusUnsold)
	if err != nil {
		return fmt.Errorf("failed to mark player unsold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unsold lot %s not found", lotID)
	}
	return nil
}

// ListSales returns the settled sales ledger for an event, newest first.
func (r *Repository) ListSales(ctx context.Context, eventID uuid.UUID) ([]models.BidRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, player_id, team_id, amount, created_at
		FROM bids
		WHERE event_id = $1
		ORDER BY created_at DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var out []models.BidRecord
	for rows.Next() {
		var b models.BidRecord
		if err := rows.Scan(&b.ID, &b.EventID, &b.PlayerID, &b.TeamID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bid record: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
