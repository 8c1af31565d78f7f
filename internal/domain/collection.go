package domain

// CollectionItem is one inventory ledger row: how many units of a definition a
// player owns. Rows with count <= 0 are never persisted; absence means zero.
type CollectionItem struct {
	PlayerID         string `json:"player_id"`
	ItemDefinitionID string `json:"item_definition_id"`
	Count            int    `json:"count"`
}

// CollectionEntry pairs a ledger row with its definition's tags for
// presentation.
type CollectionEntry struct {
	ItemDefinitionID string   `json:"id"`
	Count            int      `json:"count"`
	Tags             []string `json:"tags"`
}
