package catalog

// Changes is the outcome of diffing a desired collection against a persisted
// one. The three sets are disjoint: a key appears in at most one of them.
type Changes[T any] struct {
	Create []T
	Update []T
	Delete []T
}

// Empty reports whether the diff produced no work at all.
func (c Changes[T]) Empty() bool {
	return len(c.Create) == 0 && len(c.Update) == 0 && len(c.Delete) == 0
}

// Diff computes create/update/delete sets for one catalog kind, keyed by
// identity. Desired entities absent from the persisted set become creates,
// desired entities present become updates (the desired value wins, the key is
// the identity so it is preserved by construction), and persisted entities
// absent from the desired set become deletes. Runs in O(n) over both inputs.
func Diff[T any](persisted, desired []T, key func(T) string) Changes[T] {
	existing := make(map[string]bool, len(persisted))
	for _, e := range persisted {
		existing[key(e)] = true
	}

	var changes Changes[T]
	wanted := make(map[string]bool, len(desired))
	for _, d := range desired {
		wanted[key(d)] = true
		if existing[key(d)] {
			changes.Update = append(changes.Update, d)
		} else {
			changes.Create = append(changes.Create, d)
		}
	}

	for _, e := range persisted {
		if !wanted[key(e)] {
			changes.Delete = append(changes.Delete, e)
		}
	}

	return changes
}
