package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/repository"
)

// MockRepository implements repository.Catalog for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAllItemTags(ctx context.Context) ([]domain.ItemTag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemTag), args.Error(1)
}

func (m *MockRepository) GetAllItemDefinitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}

func (m *MockRepository) GetItemDefinitionByID(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockRepository) ApplyCatalogBatch(ctx context.Context, batch repository.CatalogBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockRepository) GetAllItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemSet), args.Error(1)
}

func (m *MockRepository) ApplyItemSetBatch(ctx context.Context, batch repository.ItemSetBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockRepository) GetAllLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadoutType), args.Error(1)
}

func (m *MockRepository) GetLoadoutTypeByID(ctx context.Context, id string) (*domain.LoadoutType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoadoutType), args.Error(1)
}

func (m *MockRepository) ReplaceLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error {
	args := m.Called(ctx, types)
	return args.Error(0)
}
