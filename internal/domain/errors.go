package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Request errors
	ErrMsgMissingPlayerID       = "missing player id"
	ErrMsgMissingItemDefinition = "missing item definition"
	ErrMsgInvalidItemCount      = "invalid item count"

	// Catalog errors
	ErrMsgUnknownItemDefinition = "unknown item definition"
	ErrMsgUnknownItemTag        = "unknown item tag"
	ErrMsgItemTagInUse          = "item tag still in use"
	ErrMsgUnknownItemSet        = "unknown item set reference"

	// Collection errors
	ErrMsgPlayerDoesNotOwnItem = "player does not own item"
	ErrMsgItemNotAContainer    = "item is not a container"
	ErrMsgEmptySlotPool        = "no item definition matches slot"

	// Loadout errors
	ErrMsgUnknownLoadout     = "unknown loadout"
	ErrMsgUnknownLoadoutType = "unknown loadout type"
	ErrMsgInvalidLoadout     = "invalid loadout"

	// Claim errors
	ErrMsgItemSetAlreadyClaimed = "item set already claimed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Request errors
	ErrMissingPlayerID       = errors.New(ErrMsgMissingPlayerID)
	ErrMissingItemDefinition = errors.New(ErrMsgMissingItemDefinition)
	ErrInvalidItemCount      = errors.New(ErrMsgInvalidItemCount)

	// Catalog errors
	ErrUnknownItemDefinition = errors.New(ErrMsgUnknownItemDefinition)
	ErrUnknownItemTag        = errors.New(ErrMsgUnknownItemTag)
	ErrItemTagInUse          = errors.New(ErrMsgItemTagInUse)
	ErrUnknownItemSet        = errors.New(ErrMsgUnknownItemSet)

	// Collection errors
	ErrPlayerDoesNotOwnItem = errors.New(ErrMsgPlayerDoesNotOwnItem)
	ErrItemNotAContainer    = errors.New(ErrMsgItemNotAContainer)

	// ErrEmptySlotPool is a catalog configuration fault, not a caller error.
	// It is reported as a server error and logged as an invariant violation.
	ErrEmptySlotPool = errors.New(ErrMsgEmptySlotPool)

	// Loadout errors
	ErrUnknownLoadout     = errors.New(ErrMsgUnknownLoadout)
	ErrUnknownLoadoutType = errors.New(ErrMsgUnknownLoadoutType)
	ErrInvalidLoadout     = errors.New(ErrMsgInvalidLoadout)

	// Claim errors
	ErrItemSetAlreadyClaimed = errors.New(ErrMsgItemSetAlreadyClaimed)
)
