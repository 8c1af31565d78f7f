package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opengamebackend/collection/internal/domain"
)

const uniqueViolationCode = "23505"

// ClaimsRepository implements the item set claim repository for PostgreSQL.
// The claimed_item_sets primary key on (player, set) is what makes claims
// exactly-once under concurrency.
type ClaimsRepository struct {
	db *pgxpool.Pool
}

// NewClaimsRepository creates a new ClaimsRepository
func NewClaimsRepository(db *pgxpool.Pool) *ClaimsRepository {
	return &ClaimsRepository{db: db}
}

// GetClaimedItemSets returns the ids of every set the player has claimed, in
// claim order
func (r *ClaimsRepository) GetClaimedItemSets(ctx context.Context, playerID string) ([]string, error) {
	query := `
		SELECT item_set_id FROM claimed_item_sets
		WHERE player_id = $1
		ORDER BY claimed_at, item_set_id
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query claimed item sets: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan claimed item set: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindUnclaimedItemSets returns every item set with no claim record for the
// player, reward lines included, ordered by set id
func (r *ClaimsRepository) FindUnclaimedItemSets(ctx context.Context, playerID string) ([]domain.ItemSet, error) {
	query := `
		SELECT s.id FROM item_sets s
		WHERE NOT EXISTS (
			SELECT 1 FROM claimed_item_sets c
			WHERE c.item_set_id = s.id AND c.player_id = $1
		)
		ORDER BY s.id
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unclaimed item sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.ItemSet
	index := make(map[string]int)
	for rows.Next() {
		var set domain.ItemSet
		if err := rows.Scan(&set.ID); err != nil {
			return nil, fmt.Errorf("failed to scan item set: %w", err)
		}
		index[set.ID] = len(sets)
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, nil
	}

	itemsQuery := `
		SELECT i.item_set_id, i.item_definition_id, i.item_count
		FROM item_set_items i
		JOIN item_sets s ON s.id = i.item_set_id
		WHERE NOT EXISTS (
			SELECT 1 FROM claimed_item_sets c
			WHERE c.item_set_id = s.id AND c.player_id = $1
		)
		ORDER BY i.item_set_id, i.ordinal
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item set items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var setID string
		var entry domain.ItemSetEntry
		if err := itemRows.Scan(&setID, &entry.ItemDefinitionID, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan item set entry: %w", err)
		}
		if i, ok := index[setID]; ok {
			sets[i].Items = append(sets[i].Items, entry)
		}
	}
	return sets, itemRows.Err()
}

// ClaimItemSet inserts the claim record and credits the set's rewards in one
// transaction. The claim insert runs first so a concurrent duplicate aborts
// before any reward is credited; the unique violation is reported as
// domain.ErrItemSetAlreadyClaimed.
func (r *ClaimsRepository) ClaimItemSet(ctx context.Context, playerID string, set domain.ItemSet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	claimQuery := `
		INSERT INTO claimed_item_sets (player_id, item_set_id)
		VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, claimQuery, playerID, set.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrItemSetAlreadyClaimed
		}
		return fmt.Errorf("failed to insert claim for %s: %w", set.ID, err)
	}

	creditQuery := `
		INSERT INTO collection_items (player_id, item_definition_id, item_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_definition_id) DO UPDATE
		SET item_count = collection_items.item_count + EXCLUDED.item_count
	`
	for _, entry := range set.Items {
		if _, err := tx.Exec(ctx, creditQuery, playerID, entry.ItemDefinitionID, entry.Count); err != nil {
			return fmt.Errorf("failed to credit reward %s: %w", entry.ItemDefinitionID, err)
		}
	}

	return tx.Commit(ctx)
}
