package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/repository"
)

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetAllItemTags returns every known item tag ordered by tag
func (r *CatalogRepository) GetAllItemTags(ctx context.Context) ([]domain.ItemTag, error) {
	rows, err := r.db.Query(ctx, "SELECT tag FROM item_tags ORDER BY tag")
	if err != nil {
		return nil, fmt.Errorf("failed to query item tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.ItemTag
	for rows.Next() {
		var tag domain.ItemTag
		if err := rows.Scan(&tag.Tag); err != nil {
			return nil, fmt.Errorf("failed to scan item tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// GetAllItemDefinitions returns every item definition with its tags and
// containers assembled
func (r *CatalogRepository) GetAllItemDefinitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	query := `
		SELECT id, max_count, containers
		FROM item_definitions
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query item definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.ItemDefinition
	index := make(map[string]int)
	for rows.Next() {
		var def domain.ItemDefinition
		var containers []byte
		if err := rows.Scan(&def.ID, &def.MaxCount, &containers); err != nil {
			return nil, fmt.Errorf("failed to scan item definition: %w", err)
		}
		if err := json.Unmarshal(containers, &def.Containers); err != nil {
			return nil, fmt.Errorf("failed to decode containers for %s: %w", def.ID, err)
		}
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tagsQuery := `
		SELECT item_definition_id, tag
		FROM item_definition_tags
		ORDER BY item_definition_id, tag
	`
	tagRows, err := r.db.Query(ctx, tagsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query definition tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var defID, tag string
		if err := tagRows.Scan(&defID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan definition tag: %w", err)
		}
		if i, ok := index[defID]; ok {
			defs[i].Tags = append(defs[i].Tags, tag)
		}
	}
	return defs, tagRows.Err()
}

// GetItemDefinitionByID returns a single item definition with its tags and
// containers, or domain.ErrUnknownItemDefinition when it does not exist
func (r *CatalogRepository) GetItemDefinitionByID(ctx context.Context, id string) (*domain.ItemDefinition, error) {
	query := `
		SELECT id, max_count, containers
		FROM item_definitions
		WHERE id = $1
	`
	var def domain.ItemDefinition
	var containers []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&def.ID, &def.MaxCount, &containers)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUnknownItemDefinition
		}
		return nil, fmt.Errorf("failed to get item definition: %w", err)
	}
	if err := json.Unmarshal(containers, &def.Containers); err != nil {
		return nil, fmt.Errorf("failed to decode containers for %s: %w", def.ID, err)
	}

	tagRows, err := r.db.Query(ctx, "SELECT tag FROM item_definition_tags WHERE item_definition_id = $1 ORDER BY tag", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query definition tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan definition tag: %w", err)
		}
		def.Tags = append(def.Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}
	return &def, nil
}

// ApplyCatalogBatch applies one catalog reconciliation outcome in a single
// transaction. Tag creates run before definition writes so new definitions
// can reference new tags; tag deletes run last.
func (r *CatalogRepository) ApplyCatalogBatch(ctx context.Context, batch repository.CatalogBatch) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, tag := range batch.CreateTags {
		_, err := tx.Exec(ctx, "INSERT INTO item_tags (tag) VALUES ($1)", tag.Tag)
		if err != nil {
			return fmt.Errorf("failed to insert tag %s: %w", tag.Tag, err)
		}
	}

	for _, def := range batch.CreateDefinitions {
		if err := insertDefinition(ctx, tx, def); err != nil {
			return err
		}
	}

	for _, def := range batch.UpdateDefinitions {
		containers, err := json.Marshal(def.Containers)
		if err != nil {
			return fmt.Errorf("failed to encode containers for %s: %w", def.ID, err)
		}
		query := `
			UPDATE item_definitions
			SET max_count = $1, containers = $2
			WHERE id = $3
		`
		if _, err := tx.Exec(ctx, query, def.MaxCount, containers, def.ID); err != nil {
			return fmt.Errorf("failed to update definition %s: %w", def.ID, err)
		}
		// Tag assignments are replaced wholesale.
		if _, err := tx.Exec(ctx, "DELETE FROM item_definition_tags WHERE item_definition_id = $1", def.ID); err != nil {
			return fmt.Errorf("failed to clear tags for %s: %w", def.ID, err)
		}
		if err := insertDefinitionTags(ctx, tx, def); err != nil {
			return err
		}
	}

	for _, def := range batch.DeleteDefinitions {
		if _, err := tx.Exec(ctx, "DELETE FROM item_definitions WHERE id = $1", def.ID); err != nil {
			return fmt.Errorf("failed to delete definition %s: %w", def.ID, err)
		}
	}

	for _, tag := range batch.DeleteTags {
		if _, err := tx.Exec(ctx, "DELETE FROM item_tags WHERE tag = $1", tag.Tag); err != nil {
			return fmt.Errorf("failed to delete tag %s: %w", tag.Tag, err)
		}
	}

	return tx.Commit(ctx)
}

func insertDefinition(ctx context.Context, tx pgx.Tx, def domain.ItemDefinition) error {
	containers, err := json.Marshal(def.Containers)
	if err != nil {
		return fmt.Errorf("failed to encode containers for %s: %w", def.ID, err)
	}
	query := `
		INSERT INTO item_definitions (id, max_count, containers)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, query, def.ID, def.MaxCount, containers); err != nil {
		return fmt.Errorf("failed to insert definition %s: %w", def.ID, err)
	}
	return insertDefinitionTags(ctx, tx, def)
}

func insertDefinitionTags(ctx context.Context, tx pgx.Tx, def domain.ItemDefinition) error {
	for _, tag := range def.Tags {
		query := `
			INSERT INTO item_definition_tags (item_definition_id, tag)
			VALUES ($1, $2)
		`
		if _, err := tx.Exec(ctx, query, def.ID, tag); err != nil {
			return fmt.Errorf("failed to assign tag %s to %s: %w", tag, def.ID, err)
		}
	}
	return nil
}

// GetAllItemSets returns every item set with its reward lines in declaration
// order
func (r *CatalogRepository) GetAllItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM item_sets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query item sets: %w", err)
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

	itemsQuery := `
		SELECT item_set_id, item_definition_id, item_count
		FROM item_set_items
		ORDER BY item_set_id, ordinal
	`
	itemRows, err := r.db.Query(ctx, itemsQuery)
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

// ApplyItemSetBatch applies one item set reconciliation outcome in a single
// transaction. Updated sets have their reward lines replaced wholesale.
func (r *CatalogRepository) ApplyItemSetBatch(ctx context.Context, batch repository.ItemSetBatch) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, set := range batch.Create {
		if _, err := tx.Exec(ctx, "INSERT INTO item_sets (id) VALUES ($1)", set.ID); err != nil {
			return fmt.Errorf("failed to insert item set %s: %w", set.ID, err)
		}
		if err := insertItemSetItems(ctx, tx, set); err != nil {
			return err
		}
	}

	for _, set := range batch.Update {
		if _, err := tx.Exec(ctx, "DELETE FROM item_set_items WHERE item_set_id = $1", set.ID); err != nil {
			return fmt.Errorf("failed to clear item set %s: %w", set.ID, err)
		}
		if err := insertItemSetItems(ctx, tx, set); err != nil {
			return err
		}
	}

	for _, set := range batch.Delete {
		if _, err := tx.Exec(ctx, "DELETE FROM item_sets WHERE id = $1", set.ID); err != nil {
			return fmt.Errorf("failed to delete item set %s: %w", set.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func insertItemSetItems(ctx context.Context, tx pgx.Tx, set domain.ItemSet) error {
	for i, entry := range set.Items {
		query := `
			INSERT INTO item_set_items (item_set_id, ordinal, item_definition_id, item_count)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, query, set.ID, i, entry.ItemDefinitionID, entry.Count); err != nil {
			return fmt.Errorf("failed to insert item set entry %s/%s: %w", set.ID, entry.ItemDefinitionID, err)
		}
	}
	return nil
}

// GetAllLoadoutTypes returns every loadout type with its rules in declaration
// order
func (r *CatalogRepository) GetAllLoadoutTypes(ctx context.Context) ([]domain.LoadoutType, error) {
	rows, err := r.db.Query(ctx, "SELECT id FROM loadout_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query loadout types: %w", err)
	}
	defer rows.Close()

	var types []domain.LoadoutType
	index := make(map[string]int)
	for rows.Next() {
		var typ domain.LoadoutType
		if err := rows.Scan(&typ.ID); err != nil {
			return nil, fmt.Errorf("failed to scan loadout type: %w", err)
		}
		index[typ.ID] = len(types)
		types = append(types, typ)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rulesQuery := `
		SELECT loadout_type_id, item_tag, min_total, max_total, max_copies
		FROM loadout_rules
		ORDER BY loadout_type_id, ordinal
	`
	ruleRows, err := r.db.Query(ctx, rulesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query loadout rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var typeID string
		var rule domain.LoadoutRule
		if err := ruleRows.Scan(&typeID, &rule.ItemTag, &rule.MinTotal, &rule.MaxTotal, &rule.MaxCopies); err != nil {
			return nil, fmt.Errorf("failed to scan loadout rule: %w", err)
		}
		if i, ok := index[typeID]; ok {
			types[i].Rules = append(types[i].Rules, rule)
		}
	}
	return types, ruleRows.Err()
}

// GetLoadoutTypeByID returns a single loadout type with its rules, or
// domain.ErrUnknownLoadoutType when it does not exist
func (r *CatalogRepository) GetLoadoutTypeByID(ctx context.Context, id string) (*domain.LoadoutType, error) {
	var typ domain.LoadoutType
	err := r.db.QueryRow(ctx, "SELECT id FROM loadout_types WHERE id = $1", id).Scan(&typ.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUnknownLoadoutType
		}
		return nil, fmt.Errorf("failed to get loadout type: %w", err)
	}

	rulesQuery := `
		SELECT item_tag, min_total, max_total, max_copies
		FROM loadout_rules
		WHERE loadout_type_id = $1
		ORDER BY ordinal
	`
	rows, err := r.db.Query(ctx, rulesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query loadout rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rule domain.LoadoutRule
		if err := rows.Scan(&rule.ItemTag, &rule.MinTotal, &rule.MaxTotal, &rule.MaxCopies); err != nil {
			return nil, fmt.Errorf("failed to scan loadout rule: %w", err)
		}
		typ.Rules = append(typ.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &typ, nil
}

// ReplaceLoadoutTypes deletes every loadout type and recreates them from the
// given list in one transaction
func (r *CatalogRepository) ReplaceLoadoutTypes(ctx context.Context, types []domain.LoadoutType) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM loadout_types"); err != nil {
		return fmt.Errorf("failed to clear loadout types: %w", err)
	}

	for _, typ := range types {
		if _, err := tx.Exec(ctx, "INSERT INTO loadout_types (id) VALUES ($1)", typ.ID); err != nil {
			return fmt.Errorf("failed to insert loadout type %s: %w", typ.ID, err)
		}
		for i, rule := range typ.Rules {
			query := `
				INSERT INTO loadout_rules (loadout_type_id, ordinal, item_tag, min_total, max_total, max_copies)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, err := tx.Exec(ctx, query, typ.ID, i, rule.ItemTag, rule.MinTotal, rule.MaxTotal, rule.MaxCopies); err != nil {
				return fmt.Errorf("failed to insert loadout rule %s/%s: %w", typ.ID, rule.ItemTag, err)
			}
		}
	}

	return tx.Commit(ctx)
}
