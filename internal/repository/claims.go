package repository

import (
	"context"

	"github.com/opengamebackend/collection/internal/domain"
)

// Claims defines the interface for one-time item set claim persistence.
type Claims interface {
	GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error)
	// FindUnclaimedItemSets returns every item set with no claim record for
	// the player, in the store's scan order.
	FindUnclaimedItemSets(ctx context.Context, playerID string) ([]domain.ItemSet, error)
	// ClaimItemSet credits the set's rewards and inserts the claim record in
	// one transaction. The claim insert is uniquely constrained on
	// (player, set); a concurrent duplicate returns
	// domain.ErrItemSetAlreadyClaimed with no rewards credited.
	ClaimItemSet(ctx context.Context, playerID string, set domain.ItemSet) error
}
