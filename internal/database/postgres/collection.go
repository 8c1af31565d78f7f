package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opengamebackend/collection/internal/domain"
)

// CollectionRepository implements the inventory ledger repository for
// PostgreSQL. Counts are adjusted with single-statement upserts so concurrent
// writers for the same (player, definition) key cannot lose an update.
type CollectionRepository struct {
	db *pgxpool.Pool
}

// NewCollectionRepository creates a new CollectionRepository
func NewCollectionRepository(db *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// GetCollection returns every ledger row of the player ordered by definition
func (r *CollectionRepository) GetCollection(ctx context.Context, playerID string) ([]domain.CollectionItem, error) {
	query := `
		SELECT player_id, item_definition_id, item_count
		FROM collection_items
		WHERE player_id = $1
		ORDER BY item_definition_id
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	defer rows.Close()

	var items []domain.CollectionItem
	for rows.Next() {
		var item domain.CollectionItem
		if err := rows.Scan(&item.PlayerID, &item.ItemDefinitionID, &item.Count); err != nil {
			return nil, fmt.Errorf("failed to scan collection item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCollectionItem returns one ledger row, or (nil, nil) when the player
// owns no units of the definition
func (r *CollectionRepository) GetCollectionItem(ctx context.Context, playerID, itemDefinitionID string) (*domain.CollectionItem, error) {
	query := `
		SELECT player_id, item_definition_id, item_count
		FROM collection_items
		WHERE player_id = $1 AND item_definition_id = $2
	`
	var item domain.CollectionItem
	err := r.db.QueryRow(ctx, query, playerID, itemDefinitionID).Scan(&item.PlayerID, &item.ItemDefinitionID, &item.Count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection item: %w", err)
	}
	return &item, nil
}

// AddItems credits count units, creating the row when absent
func (r *CollectionRepository) AddItems(ctx context.Context, playerID, itemDefinitionID string, count int) error {
	query := `
		INSERT INTO collection_items (player_id, item_definition_id, item_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_definition_id) DO UPDATE
		SET item_count = collection_items.item_count + EXCLUDED.item_count
	`
	if _, err := r.db.Exec(ctx, query, playerID, itemDefinitionID, count); err != nil {
		return fmt.Errorf("failed to add items: %w", err)
	}
	return nil
}

// SetItemCount overwrites an existing row's count. Returns false when the
// player owns no row for the definition.
func (r *CollectionRepository) SetItemCount(ctx context.Context, playerID, itemDefinitionID string, count int) (bool, error) {
	query := `
		UPDATE collection_items
		SET item_count = $3
		WHERE player_id = $1 AND item_definition_id = $2
	`
	tag, err := r.db.Exec(ctx, query, playerID, itemDefinitionID, count)
	if err != nil {
		return false, fmt.Errorf("failed to set item count: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveItems deletes the row unconditionally regardless of count
func (r *CollectionRepository) RemoveItems(ctx context.Context, playerID, itemDefinitionID string) error {
	query := `
		DELETE FROM collection_items
		WHERE player_id = $1 AND item_definition_id = $2
	`
	if _, err := r.db.Exec(ctx, query, playerID, itemDefinitionID); err != nil {
		return fmt.Errorf("failed to remove items: %w", err)
	}
	return nil
}

// ApplyContainerResult applies one container opening in a single transaction:
// every award is credited, then the consumed units are debited from the
// source definition. The source row is locked for the debit so concurrent
// openings of the same container serialize instead of losing units.
func (r *CollectionRepository) ApplyContainerResult(ctx context.Context, playerID, sourceDefinitionID string, consumed int, awards map[string]int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	creditQuery := `
		INSERT INTO collection_items (player_id, item_definition_id, item_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, item_definition_id) DO UPDATE
		SET item_count = collection_items.item_count + EXCLUDED.item_count
	`
	for defID, count := range awards {
		if _, err := tx.Exec(ctx, creditQuery, playerID, defID, count); err != nil {
			return fmt.Errorf("failed to credit award %s: %w", defID, err)
		}
	}

	var owned int
	lockQuery := `
		SELECT item_count FROM collection_items
		WHERE player_id = $1 AND item_definition_id = $2
		FOR UPDATE
	`
	err = tx.QueryRow(ctx, lockQuery, playerID, sourceDefinitionID).Scan(&owned)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrPlayerDoesNotOwnItem
		}
		return fmt.Errorf("failed to lock source row: %w", err)
	}

	if owned-consumed <= 0 {
		deleteQuery := `
			DELETE FROM collection_items
			WHERE player_id = $1 AND item_definition_id = $2
		`
		if _, err := tx.Exec(ctx, deleteQuery, playerID, sourceDefinitionID); err != nil {
			return fmt.Errorf("failed to remove consumed source: %w", err)
		}
	} else {
		debitQuery := `
			UPDATE collection_items
			SET item_count = item_count - $3
			WHERE player_id = $1 AND item_definition_id = $2
		`
		if _, err := tx.Exec(ctx, debitQuery, playerID, sourceDefinitionID, consumed); err != nil {
			return fmt.Errorf("failed to debit source: %w", err)
		}
	}

	return tx.Commit(ctx)
}
