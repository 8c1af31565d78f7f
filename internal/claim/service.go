package claim

import (
	"context"
	"errors"
	"fmt"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
	"github.com/opengamebackend/collection/internal/metrics"
	"github.com/opengamebackend/collection/internal/repository"
)

// Service defines the item set claim interface.
type Service interface {
	// Claim grants the first item set the player has not claimed yet and
	// records the claim. A nil result means nothing is left to claim, which
	// is a normal outcome.
	Claim(ctx context.Context, playerID string) (*domain.ItemSet, error)
	GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error)
}

type service struct {
	repo repository.Claims
}

// NewService creates a new claim service.
func NewService(repo repository.Claims) Service {
	return &service{repo: repo}
}

func (s *service) Claim(ctx context.Context, playerID string) (*domain.ItemSet, error) {
	if playerID == "" {
		return nil, domain.ErrMissingPlayerID
	}

	set, err := s.claimNext(ctx, playerID)
	if errors.Is(err, domain.ErrItemSetAlreadyClaimed) {
		// Lost a race against a concurrent claim for the same set. The claim
		// record insert is uniquely constrained, so no double award happened;
		// re-derive the next unclaimed set once.
		logger.FromContext(ctx).Warn("Concurrent claim detected, retrying",
			"player_id", playerID)
		set, err = s.claimNext(ctx, playerID)
	}
	if err != nil {
		return nil, err
	}

	if set != nil {
		metrics.ItemSetsClaimed.WithLabelValues(set.ID).Inc()
		logger.FromContext(ctx).Info("Item set claimed",
			"player_id", playerID, "item_set", set.ID)
	}

	return set, nil
}

func (s *service) claimNext(ctx context.Context, playerID string) (*domain.ItemSet, error) {
	unclaimed, err := s.repo.FindUnclaimedItemSets(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unclaimed item sets: %w", err)
	}
	if len(unclaimed) == 0 {
		return nil, nil
	}

	set := unclaimed[0]
	if err := s.repo.ClaimItemSet(ctx, playerID, set); err != nil {
		return nil, err
	}

	return &set, nil
}

func (s *service) GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error) {
	if playerID == "" {
		return nil, domain.ErrMissingPlayerID
	}

	claimed, err := s.repo.GetClaimedItemSets(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claimed item sets: %w", err)
	}
	return claimed, nil
}
