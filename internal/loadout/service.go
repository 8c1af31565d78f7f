package loadout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
	"github.com/opengamebackend/collection/internal/repository"
)

// Service defines the loadout interface: player loadout CRUD with rule
// validation, plus the loadout type catalog.
type Service interface {
	AddLoadout(ctx context.Context, playerID, typeID string, items []domain.LoadoutEntry) (string, error)
	GetLoadouts(ctx context.Context, playerID string) ([]domain.Loadout, error)
	PutLoadout(ctx context.Context, playerID, loadoutID, typeID string, items []domain.LoadoutEntry) error
	DeleteLoadout(ctx context.Context, playerID, loadoutID string) error

	GetLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error)
	// PutLoadoutTypes replaces all loadout types wholesale. Rules are cheap
	// and ordering-insensitive, so no per-type diffing is done.
	PutLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error
}

type service struct {
	repo    repository.Loadouts
	catalog repository.Catalog
}

// NewService creates a new loadout service.
func NewService(repo repository.Loadouts, catalog repository.Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) AddLoadout(ctx context.Context, playerID, typeID string, items []domain.LoadoutEntry) (string, error) {
	if playerID == "" {
		return "", domain.ErrMissingPlayerID
	}

	loadout := &domain.Loadout{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		TypeID:   typeID,
		Items:    items,
	}
	if err := s.validate(ctx, loadout); err != nil {
		return "", err
	}

	if err := s.repo.InsertLoadout(ctx, loadout); err != nil {
		return "", fmt.Errorf("failed to insert loadout: %w", err)
	}

	logger.FromContext(ctx).Info("Loadout created",
		"player_id", playerID, "loadout_id", loadout.ID, "type", typeID)
	return loadout.ID, nil
}

func (s *service) GetLoadouts(ctx context.Context, playerID string) ([]domain.Loadout, error) {
	if playerID == "" {
		return nil, domain.ErrMissingPlayerID
	}

	loadouts, err := s.repo.GetLoadoutsByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loadouts: %w", err)
	}
	return loadouts, nil
}

func (s *service) PutLoadout(ctx context.Context, playerID, loadoutID, typeID string, items []domain.LoadoutEntry) error {
	if playerID == "" {
		return domain.ErrMissingPlayerID
	}

	existing, err := s.repo.GetLoadoutByID(ctx, loadoutID)
	if err != nil {
		return err
	}
	// Another player's loadout is indistinguishable from a missing one.
	if existing.PlayerID != playerID {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLoadout, loadoutID)
	}

	existing.PlayerID = playerID
	existing.TypeID = typeID
	existing.Items = items
	if err := s.validate(ctx, existing); err != nil {
		return err
	}

	if err := s.repo.UpdateLoadout(ctx, existing); err != nil {
		return fmt.Errorf("failed to update loadout: %w", err)
	}

	logger.FromContext(ctx).Info("Loadout updated",
		"player_id", playerID, "loadout_id", loadoutID, "type", typeID)
	return nil
}

func (s *service) DeleteLoadout(ctx context.Context, playerID, loadoutID string) error {
	if playerID == "" {
		return domain.ErrMissingPlayerID
	}

	existing, err := s.repo.GetLoadoutByID(ctx, loadoutID)
	if err != nil {
		return err
	}
	if existing.PlayerID != playerID {
		return fmt.Errorf("%w: %q", domain.ErrUnknownLoadout, loadoutID)
	}

	if err := s.repo.DeleteLoadout(ctx, loadoutID); err != nil {
		return fmt.Errorf("failed to delete loadout: %w", err)
	}

	logger.FromContext(ctx).Info("Loadout deleted",
		"player_id", playerID, "loadout_id", loadoutID)
	return nil
}

func (s *service) GetLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error) {
	types, err := s.catalog.GetAllLoadoutTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get loadout types: %w", err)
	}
	return types, nil
}

func (s *service) PutLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error {
	tags, err := s.catalog.GetAllItemTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to get item tags: %w", err)
	}
	known := make(map[string]bool, len(tags))
	for _, t := range tags {
		known[t.Tag] = true
	}

	// Every rule's tag reference must resolve before anything is replaced.
	for _, typ := range types {
		for _, rule := range typ.Rules {
			if !known[rule.ItemTag] {
				return fmt.Errorf("%w: %q in loadout type %q", domain.ErrUnknownItemTag, rule.ItemTag, typ.ID)
			}
		}
	}

	if err := s.catalog.ReplaceLoadoutTypes(ctx, types); err != nil {
		return fmt.Errorf("failed to replace loadout types: %w", err)
	}

	metrics.CatalogSyncs.WithLabelValues("loadouttypes").Inc()
	logger.FromContext(ctx).Info("Loadout types replaced", "count", len(types))
	return nil
}

// validate resolves the loadout's type and definitions, then runs the rule
// validator. Nothing is persisted when validation fails.
func (s *service) validate(ctx context.Context, loadout *domain.Loadout) error {
	typ, err := s.catalog.GetLoadoutTypeByID(ctx, loadout.TypeID)
	if err != nil {
		return err
	}

	defs := make(map[string]*domain.ItemDefinition, len(loadout.Items))
	for _, line := range loadout.Items {
		if _, ok := defs[line.ItemDefinitionID]; ok {
			continue
		}
		def, err := s.catalog.GetItemDefinitionByID(ctx, line.ItemDefinitionID)
		if err != nil {
			return err
		}
		defs[line.ItemDefinitionID] = def
	}

	return Verify(loadout, typ, defs)
}
