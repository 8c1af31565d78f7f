package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
	"github.com/opengamebackend/collection/internal/repository"
)

// ErrDuplicateDefinition is returned when a desired list declares the same
// definition id twice.
var ErrDuplicateDefinition = errors.New("duplicate item definition")

// ErrEmptyContainer is returned when a desired definition declares a container
// with no slots. Such a container could never resolve a draw.
var ErrEmptyContainer = errors.New("container has no slots")

// Definition cache sizing. Definitions only change through PutItemDefinitions,
// which purges the cache, so a generous TTL is safe.
const (
	defCacheSize = 1024
	defCacheTTL  = 5 * time.Minute
)

// Service defines the catalog interface: reads plus declarative-state updates
// for tags, item definitions and item sets.
type Service interface {
	GetItemDefinitions(ctx context.Context) ([]string, []domain.ItemDefinition, error)
	// PutItemDefinitions reconciles the persisted tags and definitions
	// against the desired list. The request is validated fully before any
	// persistence; a failing request leaves the catalog untouched.
	PutItemDefinitions(ctx context.Context, desired []domain.ItemDefinition) error

	GetItemSets(ctx context.Context) ([]domain.ItemSet, error)
	PutItemSets(ctx context.Context, desired []domain.ItemSet) error

	// Definition resolves one definition by id, served from an in-memory
	// cache that is purged on catalog updates.
	Definition(ctx context.Context, id string) (*domain.ItemDefinition, error)
	Definitions(ctx context.Context) ([]domain.ItemDefinition, error)
}

type service struct {
	repo     repository.Catalog
	defCache *expirable.LRU[string, *domain.ItemDefinition]
}

// NewService creates a new catalog service.
func NewService(repo repository.Catalog) Service {
	return &service{
		repo:     repo,
		defCache: expirable.NewLRU[string, *domain.ItemDefinition](defCacheSize, nil, defCacheTTL),
	}
}

func (s *service) GetItemDefinitions(ctx context.Context) ([]string, []domain.ItemDefinition, error) {
	tags, err := s.repo.GetAllItemTags(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get item tags: %w", err)
	}

	defs, err := s.repo.GetAllItemDefinitions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get item definitions: %w", err)
	}

	tagNames := make([]string, len(tags))
	for i, t := range tags {
		tagNames[i] = t.Tag
	}

	return tagNames, defs, nil
}

func (s *service) PutItemDefinitions(ctx context.Context, desired []domain.ItemDefinition) error {
	log := logger.FromContext(ctx)

	if err := validateDefinitions(desired); err != nil {
		return err
	}

	persistedTags, err := s.repo.GetAllItemTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to get item tags: %w", err)
	}
	persistedDefs, err := s.repo.GetAllItemDefinitions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get item definitions: %w", err)
	}

	// Tags are implied by the desired definitions' tag lists.
	desiredTags := impliedTags(desired)

	tagChanges := Diff(persistedTags, desiredTags, func(t domain.ItemTag) string { return t.Tag })
	defChanges := Diff(persistedDefs, desired, func(d domain.ItemDefinition) string { return d.ID })

	// Slot required tags must resolve against the reconciled tag set.
	declared := make(map[string]bool, len(desiredTags))
	for _, t := range desiredTags {
		declared[t.Tag] = true
	}
	for _, def := range desired {
		for _, c := range def.Containers {
			for _, slot := range c.Slots {
				for _, tag := range slot.RequiredTags {
					if !declared[tag] {
						return fmt.Errorf("%w: %q in definition %q", domain.ErrUnknownItemTag, tag, def.ID)
					}
				}
			}
		}
	}

	// A tag delete is refused while a surviving definition's persisted state
	// still references the tag. Dropping a tag therefore takes deleting its
	// referencing definitions in the same request, never a silent cascade.
	deleting := make(map[string]bool, len(defChanges.Delete))
	for _, def := range defChanges.Delete {
		deleting[def.ID] = true
	}
	referenced := make(map[string]bool)
	for _, def := range persistedDefs {
		if deleting[def.ID] {
			continue
		}
		for _, tag := range def.Tags {
			referenced[tag] = true
		}
	}
	for _, tag := range tagChanges.Delete {
		if referenced[tag.Tag] {
			return fmt.Errorf("%w: %q", domain.ErrItemTagInUse, tag.Tag)
		}
	}

	// A definition delete is likewise refused while a persisted item set
	// still rewards it. Item sets are reconciled separately, so every
	// persisted set survives this request.
	if len(defChanges.Delete) > 0 {
		sets, err := s.repo.GetAllItemSets(ctx)
		if err != nil {
			return fmt.Errorf("failed to get item sets: %w", err)
		}
		for _, set := range sets {
			for _, entry := range set.Items {
				if deleting[entry.ItemDefinitionID] {
					return fmt.Errorf("%w: item set %q still rewards definition %q",
						domain.ErrUnknownItemSet, set.ID, entry.ItemDefinitionID)
				}
			}
		}
	}

	batch := repository.CatalogBatch{
		CreateTags:        tagChanges.Create,
		DeleteTags:        tagChanges.Delete,
		CreateDefinitions: defChanges.Create,
		UpdateDefinitions: defChanges.Update,
		DeleteDefinitions: defChanges.Delete,
	}
	if err := s.repo.ApplyCatalogBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to apply catalog changes: %w", err)
	}

	s.defCache.Purge()

	metrics.CatalogSyncs.WithLabelValues("itemdefinitions").Inc()
	log.Info("Item definitions reconciled",
		"tags_created", len(tagChanges.Create),
		"tags_deleted", len(tagChanges.Delete),
		"definitions_created", len(defChanges.Create),
		"definitions_updated", len(defChanges.Update),
		"definitions_deleted", len(defChanges.Delete))

	return nil
}

func (s *service) GetItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	sets, err := s.repo.GetAllItemSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get item sets: %w", err)
	}
	return sets, nil
}

func (s *service) PutItemSets(ctx context.Context, desired []domain.ItemSet) error {
	log := logger.FromContext(ctx)

	defs, err := s.repo.GetAllItemDefinitions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get item definitions: %w", err)
	}
	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		known[d.ID] = true
	}

	// Validate every reward line before touching persistence.
	for _, set := range desired {
		for _, entry := range set.Items {
			if !known[entry.ItemDefinitionID] {
				return fmt.Errorf("%w: %q in item set %q", domain.ErrUnknownItemDefinition, entry.ItemDefinitionID, set.ID)
			}
			if entry.Count <= 0 {
				return fmt.Errorf("%w: %d for %q in item set %q", domain.ErrInvalidItemCount, entry.Count, entry.ItemDefinitionID, set.ID)
			}
		}
	}

	persisted, err := s.repo.GetAllItemSets(ctx)
	if err != nil {
		return fmt.Errorf("failed to get item sets: %w", err)
	}

	changes := Diff(persisted, desired, func(set domain.ItemSet) string { return set.ID })

	batch := repository.ItemSetBatch{
		Create: changes.Create,
		Update: changes.Update,
		Delete: changes.Delete,
	}
	if err := s.repo.ApplyItemSetBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to apply item set changes: %w", err)
	}

	metrics.CatalogSyncs.WithLabelValues("itemsets").Inc()
	log.Info("Item sets reconciled",
		"created", len(changes.Create),
		"updated", len(changes.Update),
		"deleted", len(changes.Delete))

	return nil
}

func (s *service) Definition(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	if def, ok := s.defCache.Get(id); ok {
		return def, nil
	}

	def, err := s.repo.GetItemDefinitionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.defCache.Add(id, def)
	return def, nil
}

func (s *service) Definitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	return s.repo.GetAllItemDefinitions(ctx)
}

// validateDefinitions checks structural constraints on the desired list.
func validateDefinitions(desired []domain.ItemDefinition) error {
	seen := make(map[string]bool, len(desired))
	for _, def := range desired {
		if def.ID == "" {
			return fmt.Errorf("%w: definition with empty id", domain.ErrMissingItemDefinition)
		}
		if seen[def.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateDefinition, def.ID)
		}
		seen[def.ID] = true

		for _, c := range def.Containers {
			if c.UnitsPerOpen < 1 {
				return fmt.Errorf("%w: units per open %d in definition %q", domain.ErrInvalidItemCount, c.UnitsPerOpen, def.ID)
			}
			if len(c.Slots) == 0 {
				return fmt.Errorf("%w: in definition %q", ErrEmptyContainer, def.ID)
			}
			for _, slot := range c.Slots {
				if slot.Weight <= 0 {
					return fmt.Errorf("%w: slot weight %d in definition %q", domain.ErrInvalidItemCount, slot.Weight, def.ID)
				}
			}
		}
	}
	return nil
}

// impliedTags returns the sorted union of all tags referenced by the desired
// definitions' tag lists.
func impliedTags(desired []domain.ItemDefinition) []domain.ItemTag {
	set := make(map[string]bool)
	for _, def := range desired {
		for _, tag := range def.Tags {
			set[tag] = true
		}
	}

	names := make([]string, 0, len(set))
	for tag := range set {
		names = append(names, tag)
	}
	sort.Strings(names)

	tags := make([]domain.ItemTag, len(names))
	for i, name := range names {
		tags[i] = domain.ItemTag{Tag: name}
	}
	return tags
}
