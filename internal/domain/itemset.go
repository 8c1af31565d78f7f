package domain

// ItemSet is a one-time reward bundle. Each player can claim a given set at
// most once.
type ItemSet struct {
	ID    string         `json:"id"`
	Items []ItemSetEntry `json:"items"`
}

// ItemSetEntry is one reward line of an item set.
type ItemSetEntry struct {
	ItemDefinitionID string `json:"item_definition_id"`
	Count            int    `json:"count"`
}

// ClaimedItemSet records that a player has claimed a set. Existence of the row
// is the claim; there is at most one per (player, set) pair.
type ClaimedItemSet struct {
	PlayerID  string `json:"player_id"`
	ItemSetID string `json:"item_set_id"`
}
