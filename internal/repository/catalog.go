package repository

import (
	"context"

	"github.com/opengamebackend/collection/internal/domain"
)

// CatalogBatch carries one reconciliation outcome for tags and item
// definitions. The implementation applies the whole batch in a single
// transaction so partial catalogs are never observable.
type CatalogBatch struct {
	CreateTags []domain.ItemTag
	DeleteTags []domain.ItemTag

	CreateDefinitions []domain.ItemDefinition
	UpdateDefinitions []domain.ItemDefinition
	DeleteDefinitions []domain.ItemDefinition
}

// ItemSetBatch carries one reconciliation outcome for item sets.
type ItemSetBatch struct {
	Create []domain.ItemSet
	Update []domain.ItemSet
	Delete []domain.ItemSet
}

// Catalog defines the interface for catalog persistence: tags, item
// definitions, item sets and loadout types.
type Catalog interface {
	GetAllItemTags(ctx context.Context) ([]domain.ItemTag, error)

	GetAllItemDefinitions(ctx context.Context) ([]domain.ItemDefinition, error)
	// GetItemDefinitionByID returns domain.ErrUnknownItemDefinition when the
	// definition does not exist.
	GetItemDefinitionByID(ctx context.Context, id string) (*domain.ItemDefinition, error)
	ApplyCatalogBatch(ctx context.Context, batch CatalogBatch) error

	GetAllItemSets(ctx context.Context) ([]domain.ItemSet, error)
	ApplyItemSetBatch(ctx context.Context, batch ItemSetBatch) error

	GetAllLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error)
	// GetLoadoutTypeByID returns domain.ErrUnknownLoadoutType when the type
	// does not exist.
	GetLoadoutTypeByID(ctx context.Context, id string) (*domain.LoadoutType, error)
	// ReplaceLoadoutTypes deletes all existing loadout types and recreates
	// them from the given list in one transaction.
	ReplaceLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error
}
