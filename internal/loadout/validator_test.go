package loadout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opengamebackend/collection/internal/domain"
)

var loadoutDefs = map[string]*domain.ItemDefinition{
	"sword":  {ID: "sword", Tags: []string{"weapon"}},
	"bow":    {ID: "bow", Tags: []string{"weapon"}},
	"potion": {ID: "potion", Tags: []string{"consumable"}},
}

func buildLoadout(items ...domain.LoadoutEntry) *domain.Loadout {
	return &domain.Loadout{ID: "l-1", PlayerID: "player-1", TypeID: "duel", Items: items}
}

func TestVerify(t *testing.T) {
	weaponRule := domain.LoadoutRule{ItemTag: "weapon", MinTotal: 1, MaxTotal: 3, MaxCopies: 2}

	tests := []struct {
		name    string
		rules   []domain.LoadoutRule
		items   []domain.LoadoutEntry
		wantErr bool
	}{
		{
			name:  "within bounds",
			rules: []domain.LoadoutRule{weaponRule},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 2},
				{ItemDefinitionID: "bow", Count: 1},
			},
		},
		{
			name:    "below minimum",
			rules:   []domain.LoadoutRule{weaponRule},
			items:   []domain.LoadoutEntry{{ItemDefinitionID: "potion", Count: 5}},
			wantErr: true,
		},
		{
			name:  "above maximum total",
			rules: []domain.LoadoutRule{weaponRule},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 2},
				{ItemDefinitionID: "bow", Count: 2},
			},
			wantErr: true,
		},
		{
			name:    "too many copies of one definition",
			rules:   []domain.LoadoutRule{weaponRule},
			items:   []domain.LoadoutEntry{{ItemDefinitionID: "sword", Count: 3}},
			wantErr: true,
		},
		{
			name:  "copies accumulate across lines",
			rules: []domain.LoadoutRule{weaponRule},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 2},
				{ItemDefinitionID: "sword", Count: 1},
			},
			wantErr: true,
		},
		{
			name:  "untagged items ignored by rule",
			rules: []domain.LoadoutRule{weaponRule},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 1},
				{ItemDefinitionID: "potion", Count: 99},
			},
		},
		{
			name:  "max total zero means unbounded",
			rules: []domain.LoadoutRule{{ItemTag: "weapon", MinTotal: 1, MaxTotal: 0, MaxCopies: 50}},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 20},
				{ItemDefinitionID: "bow", Count: 20},
			},
		},
		{
			name:  "no rules always passes",
			rules: nil,
			items: []domain.LoadoutEntry{{ItemDefinitionID: "potion", Count: 1}},
		},
		{
			name: "every rule must hold",
			rules: []domain.LoadoutRule{
				weaponRule,
				{ItemTag: "consumable", MinTotal: 1, MaxTotal: 2, MaxCopies: 2},
			},
			items: []domain.LoadoutEntry{
				{ItemDefinitionID: "sword", Count: 1},
				{ItemDefinitionID: "potion", Count: 3},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := &domain.LoadoutType{ID: "duel", Rules: tt.rules}

			err := Verify(buildLoadout(tt.items...), typ, loadoutDefs)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidLoadout)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyUnknownDefinition(t *testing.T) {
	typ := &domain.LoadoutType{ID: "duel", Rules: []domain.LoadoutRule{{ItemTag: "weapon", MaxCopies: 1}}}

	err := Verify(buildLoadout(domain.LoadoutEntry{ItemDefinitionID: "ghost", Count: 1}), typ, loadoutDefs)

	assert.ErrorIs(t, err, domain.ErrUnknownItemDefinition)
}

func TestRuleUnbounded(t *testing.T) {
	assert.True(t, domain.LoadoutRule{MaxTotal: 0}.Unbounded())
	assert.True(t, domain.LoadoutRule{MaxTotal: -1}.Unbounded())
	assert.False(t, domain.LoadoutRule{MaxTotal: 1}.Unbounded())
}
