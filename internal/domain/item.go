package domain

// ItemTag is a label attached to item definitions. Tags drive slot eligibility
// filtering and loadout rule matching. The tag string is the identity key.
type ItemTag struct {
	Tag string `json:"tag"`
}

// ItemDefinition describes a kind of item players can own. A definition with a
// non-empty Containers list is openable as a loot container.
type ItemDefinition struct {
	ID         string      `json:"id"`
	MaxCount   int         `json:"max_count,omitempty"` // 0 = unbounded
	Tags       []string    `json:"tags"`
	Containers []Container `json:"containers,omitempty"`
}

// IsContainer reports whether the definition can be opened.
func (d *ItemDefinition) IsContainer() bool {
	return len(d.Containers) > 0
}

// HasTag reports whether the definition carries the given tag.
func (d *ItemDefinition) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the definition carries every tag in tags.
// An empty slice matches every definition.
func (d *ItemDefinition) HasAllTags(tags []string) bool {
	for _, t := range tags {
		if !d.HasTag(t) {
			return false
		}
	}
	return true
}

// Container is a value-owned child of an ItemDefinition. Opening the owning
// definition consumes UnitsPerOpen units and performs UnitsPerOpen draws.
type Container struct {
	UnitsPerOpen int    `json:"units_per_open"`
	Slots        []Slot `json:"slots"`
}

// Slot is one weighted reward pool descriptor inside a container. Weight is a
// relative probability against the other slots of the same container.
type Slot struct {
	RequiredTags []string `json:"required_tags"`
	Weight       int      `json:"weight"`
}
