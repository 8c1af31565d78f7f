package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opengamebackend/collection/internal/domain"
)

// MockCollectionService implements collection.Service for testing
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) GetCollection(ctx context.Context, playerID string) ([]domain.CollectionEntry, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionEntry), args.Error(1)
}

func (m *MockCollectionService) AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	args := m.Called(ctx, playerID, itemDefinitionID, count)
	return args.Error(0)
}

func (m *MockCollectionService) SetItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	args := m.Called(ctx, playerID, itemDefinitionID, count)
	return args.Error(0)
}

func (m *MockCollectionService) RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error {
	args := m.Called(ctx, playerID, itemDefinitionID)
	return args.Error(0)
}

// MockContainerService implements container.Service for testing
type MockContainerService struct {
	mock.Mock
}

func (m *MockContainerService) Open(ctx context.Context, playerID, itemDefinitionID string) (map[string]int, error) {
	args := m.Called(ctx, playerID, itemDefinitionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockClaimService implements claim.Service for testing
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) Claim(ctx context.Context, playerID string) (*domain.ItemSet, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemSet), args.Error(1)
}

func (m *MockClaimService) GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockLoadoutService implements loadout.Service for testing
type MockLoadoutService struct {
	mock.Mock
}

func (m *MockLoadoutService) AddLoadout(ctx context.Context, playerID, typeID string, items []domain.LoadoutEntry) (string, error) {
	args := m.Called(ctx, playerID, typeID, items)
	return args.String(0), args.Error(1)
}

func (m *MockLoadoutService) GetLoadouts(ctx context.Context, playerID string) ([]domain.Loadout, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loadout), args.Error(1)
}

func (m *MockLoadoutService) PutLoadout(ctx context.Context, playerID, loadoutID, typeID string, items []domain.LoadoutEntry) error {
	args := m.Called(ctx, playerID, loadoutID, typeID, items)
	return args.Error(0)
}

func (m *MockLoadoutService) DeleteLoadout(ctx context.Context, playerID, loadoutID string) error {
	args := m.Called(ctx, playerID, loadoutID)
	return args.Error(0)
}

func (m *MockLoadoutService) GetLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoadoutType), args.Error(1)
}

func (m *MockLoadoutService) PutLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error {
	args := m.Called(ctx, types)
	return args.Error(0)
}

// MockCatalogService implements catalog.Service for testing
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetItemDefinitions(ctx context.Context) ([]string, []domain.ItemDefinition, error) {
	args := m.Called(ctx)
	var tags []string
	if args.Get(0) != nil {
		tags = args.Get(0).([]string)
	}
	var defs []domain.ItemDefinition
	if args.Get(1) != nil {
		defs = args.Get(1).([]domain.ItemDefinition)
	}
	return tags, defs, args.Error(2)
}

func (m *MockCatalogService) PutItemDefinitions(ctx context.Context, desired []domain.ItemDefinition) error {
	args := m.Called(ctx, desired)
	return args.Error(0)
}

func (m *MockCatalogService) GetItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemSet), args.Error(1)
}

func (m *MockCatalogService) PutItemSets(ctx context.Context, desired []domain.ItemSet) error {
	args := m.Called(ctx, desired)
	return args.Error(0)
}

func (m *MockCatalogService) Definition(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalogService) Definitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}
