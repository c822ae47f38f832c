package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/ipl-auction/go/internal/models"
)

// App layers validation on top of the event repository. It also serves the
// auction coordinator's event reads.
type App struct {
	repo *Repository
}

func NewApp(repo *Repository) *App {
	return &App{repo: repo}
}

func (a *App) CreateEvent(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if req.TeamBudget <= 0 {
		return nil, fmt.Errorf("team budget must be positive")
	}
	for role, limit := range req.RoleLimits {
		if limit < 0 {
			return nil, fmt.Errorf("role limit for %s must not be negative", role)
		}
	}
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		return nil, fmt.Errorf("event end time must be after start time")
	}
	return a.repo.CreateEvent(ctx, req)
}

func (a *App) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return a.repo.GetEvent(ctx, id)
}

func (a *App) ListEvents(ctx context.Context) ([]models.Event, error) {
	return a.repo.ListEvents(ctx)
}

func (a *App) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	return a.repo.ListActiveEvents(ctx)
}

func (a *App) ActivateEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return a.repo.ActivateEvent(ctx, id)
}

func (a *App) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return a.repo.DeleteEvent(ctx, id)
}

// GetActiveEvent serves the coordinator's active-event check.
func (a *App) GetActiveEvent(ctx context.Context) (*models.Event, error) {
	return a.repo.GetActiveEvent(ctx)
}

// GetRoleLimits returns the role quota configuration for an event.
func (a *App) GetRoleLimits(ctx context.Context, eventID uuid.UUID) (models.RoleLimits, error) {
	e, err := a.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return e.RoleLimits, nil
}
