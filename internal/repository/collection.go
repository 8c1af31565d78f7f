package repository

import (
	"context"

	"github.com/opengamebackend/collection/internal/domain"
)

// Collection defines the interface for inventory ledger persistence.
//
// All write operations are atomic with respect to concurrent callers: counts
// are adjusted with single-statement increments/decrements so two concurrent
// writers for the same (player, definition) key cannot lose an update.
type Collection interface {
	GetCollection(ctx context.Context, playerID string) ([]domain.CollectionItem, error)
	// GetCollectionItem returns (nil, nil) when the player owns no units of
	// the definition; absence is a normal state, not an error.
	GetCollectionItem(ctx context.Context, playerID, itemDefinitionID string) (*domain.CollectionItem, error)

	// AddItems credits count units, creating the row when absent.
	AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error
	// SetItemCount overwrites an existing row's count. Returns false when the
	// player owns no row for the definition; nothing is created in that case.
	SetItemCount(ctx context.Context, playerID, itemDefinitionID string, count int) (bool, error)
	// RemoveItems deletes the row unconditionally regardless of count.
	RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error

	// ApplyContainerResult applies one container opening in a single
	// transaction: every award is credited and consumed units are debited
	// from the source definition. A debit that would leave the count at or
	// below zero deletes the row instead.
	ApplyContainerResult(ctx context.Context, playerID, sourceDefinitionID string, consumed int, awards map[string]int) error
}
