package claim

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opengamebackend/collection/internal/domain"
)

// MockRepository implements repository.Claims for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) FindUnclaimedItemSets(ctx context.Context, playerID string) ([]domain.ItemSet, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemSet), args.Error(1)
}

func (m *MockRepository) ClaimItemSet(ctx context.Context, playerID string, set domain.ItemSet) error {
	args := m.Called(ctx, playerID, set)
	return args.Error(0)
}
