package container

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opengamebackend/collection/internal/domain"
)

var testDefs = []domain.ItemDefinition{
	{ID: "coin", Tags: []string{"common"}},
	{ID: "gem", Tags: []string{"rare"}},
	{ID: "crate", Tags: []string{"container"}},
}

func crateDefinition() *domain.ItemDefinition {
	return &domain.ItemDefinition{
		ID:   "crate",
		Tags: []string{"container"},
		Containers: []domain.Container{{
			UnitsPerOpen: 2,
			Slots: []domain.Slot{
				{RequiredTags: []string{"common"}, Weight: 3},
				{RequiredTags: []string{"rare"}, Weight: 1},
			},
		}},
	}
}

// sequence returns an rnd function that replays the given values in order.
func sequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestOpenPreconditionOrder(t *testing.T) {
	t.Run("missing player", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog), nil)
		_, err := svc.Open(context.Background(), "", "crate")
		assert.ErrorIs(t, err, domain.ErrMissingPlayerID)
	})

	t.Run("missing definition", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog), nil)
		_, err := svc.Open(context.Background(), "player-1", "")
		assert.ErrorIs(t, err, domain.ErrMissingItemDefinition)
	})

	t.Run("unknown definition", func(t *testing.T) {
		cat := new(MockCatalog)
		cat.On("Definition", mock.Anything, "ghost").Return(nil, domain.ErrUnknownItemDefinition)

		svc := NewService(new(MockRepository), cat, nil)
		_, err := svc.Open(context.Background(), "player-1", "ghost")
		assert.ErrorIs(t, err, domain.ErrUnknownItemDefinition)
	})

	t.Run("not owned", func(t *testing.T) {
		repo := new(MockRepository)
		cat := new(MockCatalog)
		cat.On("Definition", mock.Anything, "crate").Return(crateDefinition(), nil)
		repo.On("GetCollectionItem", mock.Anything, "player-1", "crate").Return(nil, nil)

		svc := NewService(repo, cat, nil)
		_, err := svc.Open(context.Background(), "player-1", "crate")
		assert.ErrorIs(t, err, domain.ErrPlayerDoesNotOwnItem)
	})

	t.Run("not a container", func(t *testing.T) {
		repo := new(MockRepository)
		cat := new(MockCatalog)
		cat.On("Definition", mock.Anything, "coin").Return(&domain.ItemDefinition{ID: "coin"}, nil)
		repo.On("GetCollectionItem", mock.Anything, "player-1", "coin").Return(&domain.CollectionItem{
			PlayerID: "player-1", ItemDefinitionID: "coin", Count: 3,
		}, nil)

		svc := NewService(repo, cat, nil)
		_, err := svc.Open(context.Background(), "player-1", "coin")
		assert.ErrorIs(t, err, domain.ErrItemNotAContainer)
	})
}

func TestOpenDrawsAndApplies(t *testing.T) {
	repo := new(MockRepository)
	cat := new(MockCatalog)
	cat.On("Definition", mock.Anything, "crate").Return(crateDefinition(), nil)
	cat.On("Definitions", mock.Anything).Return(testDefs, nil)
	repo.On("GetCollectionItem", mock.Anything, "player-1", "crate").Return(&domain.CollectionItem{
		PlayerID: "player-1", ItemDefinitionID: "crate", Count: 5,
	}, nil)

	var consumed int
	var awards map[string]int
	repo.On("ApplyContainerResult", mock.Anything, "player-1", "crate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			consumed = args.Get(3).(int)
			awards = args.Get(4).(map[string]int)
		}).Return(nil)

	// First draw rolls slot 0 (common pool -> coin), second rolls slot 1
	// (rare pool -> gem). Each draw consumes a slot roll and a pool roll.
	svc := NewService(repo, cat, sequence(0.0, 0.0, 0.99, 0.0))
	got, err := svc.Open(context.Background(), "player-1", "crate")

	require.NoError(t, err)
	assert.Equal(t, 2, consumed)
	assert.Equal(t, map[string]int{"coin": 1, "gem": 1}, awards)
	assert.Equal(t, awards, got)
}

func TestOpenProcessesAllContainers(t *testing.T) {
	multi := &domain.ItemDefinition{
		ID:   "bundle",
		Tags: []string{"container"},
		Containers: []domain.Container{
			{UnitsPerOpen: 1, Slots: []domain.Slot{{RequiredTags: []string{"common"}, Weight: 1}}},
			{UnitsPerOpen: 2, Slots: []domain.Slot{{RequiredTags: []string{"rare"}, Weight: 1}}},
		},
	}

	repo := new(MockRepository)
	cat := new(MockCatalog)
	cat.On("Definition", mock.Anything, "bundle").Return(multi, nil)
	cat.On("Definitions", mock.Anything).Return(testDefs, nil)
	repo.On("GetCollectionItem", mock.Anything, "player-1", "bundle").Return(&domain.CollectionItem{
		PlayerID: "player-1", ItemDefinitionID: "bundle", Count: 3,
	}, nil)
	repo.On("ApplyContainerResult", mock.Anything, "player-1", "bundle", 3, map[string]int{"coin": 1, "gem": 2}).Return(nil)

	svc := NewService(repo, cat, sequence(0.0))
	got, err := svc.Open(context.Background(), "player-1", "bundle")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"coin": 1, "gem": 2}, got)
	repo.AssertExpectations(t)
}

func TestOpenEmptySlotPool(t *testing.T) {
	broken := &domain.ItemDefinition{
		ID:   "crate",
		Tags: []string{"container"},
		Containers: []domain.Container{{
			UnitsPerOpen: 1,
			Slots:        []domain.Slot{{RequiredTags: []string{"mythic"}, Weight: 1}},
		}},
	}

	repo := new(MockRepository)
	cat := new(MockCatalog)
	cat.On("Definition", mock.Anything, "crate").Return(broken, nil)
	cat.On("Definitions", mock.Anything).Return(testDefs, nil)
	repo.On("GetCollectionItem", mock.Anything, "player-1", "crate").Return(&domain.CollectionItem{
		PlayerID: "player-1", ItemDefinitionID: "crate", Count: 1,
	}, nil)

	svc := NewService(repo, cat, sequence(0.0))
	_, err := svc.Open(context.Background(), "player-1", "crate")

	assert.ErrorIs(t, err, domain.ErrEmptySlotPool)
	repo.AssertNotCalled(t, "ApplyContainerResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenContainerWithoutSlots(t *testing.T) {
	broken := &domain.ItemDefinition{
		ID:         "crate",
		Tags:       []string{"container"},
		Containers: []domain.Container{{UnitsPerOpen: 1, Slots: nil}},
	}

	repo := new(MockRepository)
	cat := new(MockCatalog)
	cat.On("Definition", mock.Anything, "crate").Return(broken, nil)
	cat.On("Definitions", mock.Anything).Return(testDefs, nil)
	repo.On("GetCollectionItem", mock.Anything, "player-1", "crate").Return(&domain.CollectionItem{
		PlayerID: "player-1", ItemDefinitionID: "crate", Count: 1,
	}, nil)

	svc := NewService(repo, cat, sequence(0.0))
	_, err := svc.Open(context.Background(), "player-1", "crate")

	assert.ErrorIs(t, err, domain.ErrEmptySlotPool)
	repo.AssertNotCalled(t, "ApplyContainerResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSelectSlot(t *testing.T) {
	cumulative, total := slotWeights([]domain.Slot{
		{Weight: 3},
		{Weight: 1},
	})
	require.Equal(t, []int{3, 4}, cumulative)
	require.Equal(t, 4, total)

	tests := []struct {
		rnd      float64
		expected int
	}{
		{rnd: 0.0, expected: 0},
		{rnd: 0.5, expected: 0},   // roll 2
		{rnd: 0.74, expected: 0},  // roll 2
		{rnd: 0.75, expected: 1},  // roll 3
		{rnd: 0.99, expected: 1},  // roll 3
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, selectSlot(cumulative, total, tt.rnd), "rnd=%v", tt.rnd)
	}
}

func TestDrawFrequenciesFollowWeights(t *testing.T) {
	c := domain.Container{
		UnitsPerOpen: 10000,
		Slots: []domain.Slot{
			{RequiredTags: []string{"common"}, Weight: 3},
			{RequiredTags: []string{"rare"}, Weight: 1},
		},
	}

	rng := rand.New(rand.NewSource(42))
	s := &service{rnd: rng.Float64}

	awards := make(map[string]int)
	require.NoError(t, s.drawContainer(c, testDefs, awards))

	draws := awards["coin"] + awards["gem"]
	require.Equal(t, c.UnitsPerOpen, draws)

	// 3:1 weights give an expected common fraction of 0.75. With 10000
	// draws the observed fraction stays well within 3 percentage points.
	fraction := float64(awards["coin"]) / float64(draws)
	assert.InDelta(t, 0.75, fraction, 0.03)
}

func TestEligiblePool(t *testing.T) {
	pool := eligible(testDefs, []string{"common"})
	require.Len(t, pool, 1)
	assert.Equal(t, "coin", pool[0].ID)

	// no required tags: everything qualifies
	assert.Len(t, eligible(testDefs, nil), len(testDefs))

	assert.Empty(t, eligible(testDefs, []string{"common", "rare"}))
}
