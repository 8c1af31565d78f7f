package container

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
	"github.com/opengamebackend/collection/internal/repository"
)

// CatalogReader provides the definition reads the resolver needs: the opened
// definition itself and the full catalog for slot pool computation.
type CatalogReader interface {
	Definition(ctx context.Context, id string) (*domain.ItemDefinition, error)
	Definitions(ctx context.Context) ([]domain.ItemDefinition, error)
}

// Service defines the loot container resolution interface.
type Service interface {
	// Open resolves one container opening: it performs the container's draws,
	// credits the rewards and debits the consumed units, all in one
	// transaction. The result maps rewarded definition ids to quantities.
	Open(ctx context.Context, playerID, itemDefinitionID string) (map[string]int, error)
}

type service struct {
	repo    repository.Collection
	catalog CatalogReader
	rnd     func() float64
}

// NewService creates a new container service. rnd may be nil, in which case
// the process-wide random source is used; tests inject a deterministic one.
func NewService(repo repository.Collection, catalog CatalogReader, rnd func() float64) Service {
	if rnd == nil {
		rnd = rand.Float64
	}
	return &service{repo: repo, catalog: catalog, rnd: rnd}
}

func (s *service) Open(ctx context.Context, playerID, itemDefinitionID string) (map[string]int, error) {
	log := logger.FromContext(ctx)

	if playerID == "" {
		return nil, domain.ErrMissingPlayerID
	}
	if itemDefinitionID == "" {
		return nil, domain.ErrMissingItemDefinition
	}

	def, err := s.catalog.Definition(ctx, itemDefinitionID)
	if err != nil {
		return nil, err
	}

	owned, err := s.repo.GetCollectionItem(ctx, playerID, itemDefinitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection item: %w", err)
	}
	if owned == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrPlayerDoesNotOwnItem, itemDefinitionID)
	}

	if !def.IsContainer() {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotAContainer, itemDefinitionID)
	}

	defs, err := s.catalog.Definitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get item definitions: %w", err)
	}

	awards := make(map[string]int)
	consumed := 0
	for _, c := range def.Containers {
		if err := s.drawContainer(c, defs, awards); err != nil {
			log.Error("Container draw failed", "item_definition", itemDefinitionID, "error", err)
			return nil, err
		}
		consumed += c.UnitsPerOpen
	}

	if err := s.repo.ApplyContainerResult(ctx, playerID, itemDefinitionID, consumed, awards); err != nil {
		return nil, fmt.Errorf("failed to apply container result: %w", err)
	}

	metrics.ContainersOpened.WithLabelValues(itemDefinitionID).Inc()
	log.Info("Container opened",
		"player_id", playerID, "item_definition", itemDefinitionID,
		"consumed", consumed, "rewards", len(awards))

	return awards, nil
}

// drawContainer performs the container's draws, accumulating rewards into
// awards. One draw selects a slot by weight, then a definition uniformly from
// the slot's eligible pool.
func (s *service) drawContainer(c domain.Container, defs []domain.ItemDefinition, awards map[string]int) error {
	if len(c.Slots) == 0 {
		return fmt.Errorf("%w: container has no slots", domain.ErrEmptySlotPool)
	}

	cumulative, total := slotWeights(c.Slots)

	for i := 0; i < c.UnitsPerOpen; i++ {
		slot := c.Slots[selectSlot(cumulative, total, s.rnd())]

		pool := eligible(defs, slot.RequiredTags)
		if len(pool) == 0 {
			// Catalog misconfiguration, never a player-facing failure.
			return fmt.Errorf("%w: required tags %v", domain.ErrEmptySlotPool, slot.RequiredTags)
		}

		chosen := pool[int(s.rnd()*float64(len(pool)))%len(pool)]
		awards[chosen.ID]++
	}

	return nil
}

// slotWeights returns the cumulative weights of the slots and their sum.
func slotWeights(slots []domain.Slot) ([]int, int) {
	cumulative := make([]int, len(slots))
	total := 0
	for i, slot := range slots {
		total += slot.Weight
		cumulative[i] = total
	}
	return cumulative, total
}

// selectSlot returns the slot index chosen by a weighted roll in [0, total).
func selectSlot(cumulative []int, total int, rnd float64) int {
	roll := int(rnd * float64(total))
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] <= roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// eligible returns every definition whose tag set is a superset of required.
// An empty required set makes every definition eligible.
func eligible(defs []domain.ItemDefinition, required []string) []*domain.ItemDefinition {
	var pool []*domain.ItemDefinition
	for i := range defs {
		if defs[i].HasAllTags(required) {
			pool = append(pool, &defs[i])
		}
	}
	return pool
}
