package loadout

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/repository"
)

// MockRepository implements repository.Loadouts for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertLoadout(ctx context.Context, loadout *domain.Loadout) error {
	args := m.Called(ctx, loadout)
	return args.Error(0)
}

func (m *MockRepository) GetLoadoutByID(ctx context.Context, id string) (*domain.Loadout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loadout), args.Error(1)
}

func (m *MockRepository) GetLoadoutsByPlayer(ctx context.Context, playerID string) ([]domain.Loadout, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loadout), args.Error(1)
}

func (m *MockRepository) UpdateLoadout(ctx context.Context, loadout *domain.Loadout) error {
	args := m.Called(ctx, loadout)
	return args.Error(0)
}

func (m *MockRepository) DeleteLoadout(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalog implements repository.Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetAllItemTags(ctx context.Context) ([]domain.ItemTag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemTag), args.Error(1)
}

func (m *MockCatalog) GetAllItemDefinitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) GetItemDefinitionByID(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) ApplyCatalogBatch(ctx context.Context, batch repository.CatalogBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockCatalog) GetAllItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemSet), args.Error(1)
}

func (m *MockCatalog) ApplyItemSetBatch(ctx context.Context, batch repository.ItemSetBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockCatalog) GetAllLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadoutType), args.Error(1)
}

func (m *MockCatalog) GetLoadoutTypeByID(ctx context.Context, id string) (*domain.LoadoutType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadoutType), args.Error(1)
}

func (m *MockCatalog) ReplaceLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error {
	args := m.Called(ctx, types)
	return args.Error(0)
}
