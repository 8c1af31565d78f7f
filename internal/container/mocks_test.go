package container

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opengamebackend/collection/internal/domain"
)

// MockRepository implements repository.Collection for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCollection(ctx context.Context, playerID string) ([]domain.CollectionItem, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionItem), args.Error(1)
}

func (m *MockRepository) GetCollectionItem(ctx context.Context, playerID, itemDefinitionID string) (*domain.CollectionItem, error) {
	args := m.Called(ctx, playerID, itemDefinitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionItem), args.Error(1)
}

func (m *MockRepository) AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	args := m.Called(ctx, playerID, itemDefinitionID, count)
	return args.Error(0)
}

func (m *MockRepository) SetItemCount(ctx context.Context, playerID, itemDefinitionID string, count int) (bool, error) {
	args := m.Called(ctx, playerID, itemDefinitionID, count)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error {
	args := m.Called(ctx, playerID, itemDefinitionID)
	return args.Error(0)
}

func (m *MockRepository) ApplyContainerResult(ctx context.Context, playerID, sourceDefinitionID string, consumed int, awards map[string]int) error {
	args := m.Called(ctx, playerID, sourceDefinitionID, consumed, awards)
	return args.Error(0)
}

// MockCatalog implements CatalogReader for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Definition(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) Definitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}
