package repository

import (
	"context"

	"github.com/opengamebackend/collection/internal/domain"
)

// Loadouts defines the interface for player loadout persistence.
type Loadouts interface {
	InsertLoadout(ctx context.Context, loadout *domain.Loadout) error
	// GetLoadoutByID returns domain.ErrUnknownLoadout when the loadout does
	// not exist.
	GetLoadoutByID(ctx context.Context, id string) (*domain.Loadout, error)
	GetLoadoutsByPlayer(ctx context.Context, playerID string) ([]domain.Loadout, error)
	// UpdateLoadout replaces the loadout's item lines wholesale.
	UpdateLoadout(ctx context.Context, loadout *domain.Loadout) error
	DeleteLoadout(ctx context.Context, id string) error
}
