package loadout

import (
	"fmt"

	"github.com/opengamebackend/collection/internal/domain"
)

// Verify checks the loadout's item lines against every rule of its type.
// defs must contain a definition for every line. Verification has no side
// effects; the caller aborts persistence on failure.
func Verify(loadout *domain.Loadout, typ *domain.LoadoutType, defs map[string]*domain.ItemDefinition) error {
	for _, rule := range typ.Rules {
		if err := verifyRule(loadout, rule, defs); err != nil {
			return err
		}
	}
	return nil
}

// verifyRule folds the loadout's lines into the rule's aggregates. Lines whose
// definition does not carry the rule's tag are excluded from this rule but may
// still count toward other rules.
func verifyRule(loadout *domain.Loadout, rule domain.LoadoutRule, defs map[string]*domain.ItemDefinition) error {
	total := 0
	copies := make(map[string]int)

	for _, line := range loadout.Items {
		def, ok := defs[line.ItemDefinitionID]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownItemDefinition, line.ItemDefinitionID)
		}
		if !def.HasTag(rule.ItemTag) {
			continue
		}

		copies[def.ID] += line.Count
		if copies[def.ID] > rule.MaxCopies {
			return fmt.Errorf("%w: more than %d copies of %q for tag %q",
				domain.ErrInvalidLoadout, rule.MaxCopies, def.ID, rule.ItemTag)
		}

		total += line.Count
	}

	if total < rule.MinTotal {
		return fmt.Errorf("%w: fewer than %d items tagged %q",
			domain.ErrInvalidLoadout, rule.MinTotal, rule.ItemTag)
	}
	if !rule.Unbounded() && total > rule.MaxTotal {
		return fmt.Errorf("%w: more than %d items tagged %q",
			domain.ErrInvalidLoadout, rule.MaxTotal, rule.ItemTag)
	}

	return nil
}
