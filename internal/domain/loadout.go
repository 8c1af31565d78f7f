package domain

// LoadoutType declares the rules a loadout of that type must satisfy.
type LoadoutType struct {
	ID    string        `json:"id"`
	Rules []LoadoutRule `json:"rules"`
}

// LoadoutRule constrains the items of one tag within a loadout.
// MaxTotal <= 0 means unbounded.
type LoadoutRule struct {
	ItemTag   string `json:"item_tag"`
	MinTotal  int    `json:"min_total"`
	MaxTotal  int    `json:"max_total"`
	MaxCopies int    `json:"max_copies"`
}

// Unbounded reports whether the rule has no upper total limit.
func (r LoadoutRule) Unbounded() bool {
	return r.MaxTotal <= 0
}

// Loadout is a player-owned, rule-validated selection of items.
type Loadout struct {
	ID       string         `json:"id"`
	PlayerID string         `json:"player_id"`
	TypeID   string         `json:"type"`
	Items    []LoadoutEntry `json:"items"`
}

// LoadoutEntry is one item line of a loadout.
type LoadoutEntry struct {
	ItemDefinitionID string `json:"item_definition_id"`
	Count            int    `json:"count"`
}
