package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opengamebackend/collection/internal/domain"
)

// LoadoutsRepository implements the player loadout repository for PostgreSQL
type LoadoutsRepository struct {
	db *pgxpool.Pool
}

// NewLoadoutsRepository creates a new LoadoutsRepository
func NewLoadoutsRepository(db *pgxpool.Pool) *LoadoutsRepository {
	return &LoadoutsRepository{db: db}
}

// InsertLoadout persists a new loadout with its item lines
func (r *LoadoutsRepository) InsertLoadout(ctx context.Context, loadout *domain.Loadout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO loadouts (id, player_id, loadout_type_id)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, loadout.ID, loadout.PlayerID, loadout.TypeID); err != nil {
		return fmt.Errorf("failed to insert loadout: %w", err)
	}
	if err := insertLoadoutItems(ctx, tx, loadout); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetLoadoutByID returns one loadout with its item lines, or
// domain.ErrUnknownLoadout when it does not exist
func (r *LoadoutsRepository) GetLoadoutByID(ctx context.Context, id string) (*domain.Loadout, error) {
	query := `
		SELECT id, player_id, loadout_type_id
		FROM loadouts
		WHERE id = $1
	`
	var loadout domain.Loadout
	err := r.db.QueryRow(ctx, query, id).Scan(&loadout.ID, &loadout.PlayerID, &loadout.TypeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUnknownLoadout
		}
		return nil, fmt.Errorf("failed to get loadout: %w", err)
	}

	itemsQuery := `
		SELECT item_definition_id, item_count
		FROM loadout_items
		WHERE loadout_id = $1
		ORDER BY ordinal
	`
	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query loadout items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.LoadoutEntry
		if err := rows.Scan(&entry.ItemDefinitionID, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan loadout entry: %w", err)
		}
		loadout.Items = append(loadout.Items, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &loadout, nil
}

// GetLoadoutsByPlayer returns every loadout of the player with item lines
func (r *LoadoutsRepository) GetLoadoutsByPlayer(ctx context.Context, playerID string) ([]domain.Loadout, error) {
	query := `
		SELECT id, player_id, loadout_type_id
		FROM loadouts
		WHERE player_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loadouts: %w", err)
	}
	defer rows.Close()

	var loadouts []domain.Loadout
	index := make(map[string]int)
	for rows.Next() {
		var loadout domain.Loadout
		if err := rows.Scan(&loadout.ID, &loadout.PlayerID, &loadout.TypeID); err != nil {
			return nil, fmt.Errorf("failed to scan loadout: %w", err)
		}
		index[loadout.ID] = len(loadouts)
		loadouts = append(loadouts, loadout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(loadouts) == 0 {
		return nil, nil
	}

	itemsQuery := `
		SELECT l.loadout_id, l.item_definition_id, l.item_count
		FROM loadout_items l
		JOIN loadouts lo ON lo.id = l.loadout_id
		WHERE lo.player_id = $1
		ORDER BY l.loadout_id, l.ordinal
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loadout items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var loadoutID string
		var entry domain.LoadoutEntry
		if err := itemRows.Scan(&loadoutID, &entry.ItemDefinitionID, &entry.Count); err != nil {
			return nil, fmt.Errorf("failed to scan loadout entry: %w", err)
		}
		if i, ok := index[loadoutID]; ok {
			loadouts[i].Items = append(loadouts[i].Items, entry)
		}
	}
	return loadouts, itemRows.Err()
}

// UpdateLoadout overwrites the loadout row and replaces its item lines
// wholesale
func (r *LoadoutsRepository) UpdateLoadout(ctx context.Context, loadout *domain.Loadout) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE loadouts
		SET player_id = $2, loadout_type_id = $3
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, loadout.ID, loadout.PlayerID, loadout.TypeID)
	if err != nil {
		return fmt.Errorf("failed to update loadout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnknownLoadout
	}

	if _, err := tx.Exec(ctx, "DELETE FROM loadout_items WHERE loadout_id = $1", loadout.ID); err != nil {
		return fmt.Errorf("failed to clear loadout items: %w", err)
	}
	if err := insertLoadoutItems(ctx, tx, loadout); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteLoadout removes the loadout and its item lines
func (r *LoadoutsRepository) DeleteLoadout(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM loadouts WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete loadout: %w", err)
	}
	return nil
}

func insertLoadoutItems(ctx context.Context, tx pgx.Tx, loadout *domain.Loadout) error {
	for i, entry := range loadout.Items {
		query := `
			INSERT INTO loadout_items (loadout_id, ordinal, item_definition_id, item_count)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, query, loadout.ID, i, entry.ItemDefinitionID, entry.Count); err != nil {
			return fmt.Errorf("failed to insert loadout entry %s: %w", entry.ItemDefinitionID, err)
		}
	}
	return nil
}
