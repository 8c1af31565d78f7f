package collection

import (
	"context"
	"fmt"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
	"github.com/opengamebackend/collection/internal/repository"
)

// CatalogReader provides read access to item definitions.
type CatalogReader interface {
	Definition(ctx context.Context, id string) (*domain.ItemDefinition, error)
}

// Service defines the inventory ledger interface. Counts never go negative:
// a row whose count would reach zero is deleted instead.
type Service interface {
	GetCollection(ctx context.Context, playerID string) ([]domain.CollectionEntry, error)
	// AddItems credits count units of a definition, creating the ledger row
	// when the player owns none yet.
	AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error
	// SetItems overwrites the count of an existing ledger row. Setting a
	// never-owned item is not creation and fails.
	SetItems(ctx context.Context, playerID, itemDefinitionID string, count int) error
	// RemoveItems deletes the ledger row regardless of its count.
	RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error
}

type service struct {
	repo    repository.Collection
	catalog CatalogReader
}

// NewService creates a new collection service.
func NewService(repo repository.Collection, catalog CatalogReader) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) GetCollection(ctx context.Context, playerID string) ([]domain.CollectionEntry, error) {
	if playerID == "" {
		return nil, domain.ErrMissingPlayerID
	}

	items, err := s.repo.GetCollection(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	entries := make([]domain.CollectionEntry, 0, len(items))
	for _, item := range items {
		def, err := s.catalog.Definition(ctx, item.ItemDefinitionID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve definition %q: %w", item.ItemDefinitionID, err)
		}
		entries = append(entries, domain.CollectionEntry{
			ItemDefinitionID: item.ItemDefinitionID,
			Count:            item.Count,
			Tags:             def.Tags,
		})
	}

	return entries, nil
}

func (s *service) AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	if err := s.checkMutation(ctx, playerID, itemDefinitionID, count); err != nil {
		return err
	}

	if err := s.repo.AddItems(ctx, playerID, itemDefinitionID, count); err != nil {
		return fmt.Errorf("failed to add items: %w", err)
	}

	metrics.ItemsCredited.WithLabelValues(itemDefinitionID).Add(float64(count))
	logger.FromContext(ctx).Info("Items added",
		"player_id", playerID, "item_definition", itemDefinitionID, "count", count)
	return nil
}

func (s *service) SetItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	if err := s.checkMutation(ctx, playerID, itemDefinitionID, count); err != nil {
		return err
	}

	updated, err := s.repo.SetItemCount(ctx, playerID, itemDefinitionID, count)
	if err != nil {
		return fmt.Errorf("failed to set item count: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: %q", domain.ErrPlayerDoesNotOwnItem, itemDefinitionID)
	}

	logger.FromContext(ctx).Info("Item count set",
		"player_id", playerID, "item_definition", itemDefinitionID, "count", count)
	return nil
}

func (s *service) RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error {
	if playerID == "" {
		return domain.ErrMissingPlayerID
	}
	if itemDefinitionID == "" {
		return domain.ErrMissingItemDefinition
	}
	if _, err := s.catalog.Definition(ctx, itemDefinitionID); err != nil {
		return err
	}

	if err := s.repo.RemoveItems(ctx, playerID, itemDefinitionID); err != nil {
		return fmt.Errorf("failed to remove items: %w", err)
	}

	logger.FromContext(ctx).Info("Items removed",
		"player_id", playerID, "item_definition", itemDefinitionID)
	return nil
}

// checkMutation validates the shared preconditions of credit and set.
func (s *service) checkMutation(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	if playerID == "" {
		return domain.ErrMissingPlayerID
	}
	if itemDefinitionID == "" {
		return domain.ErrMissingItemDefinition
	}
	if count <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidItemCount, count)
	}
	if _, err := s.catalog.Definition(ctx, itemDefinitionID); err != nil {
		return err
	}
	return nil
}
