package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/opengamebackend/collection/internal/catalog"
	"github.com/opengamebackend/collection/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a failing payload never produces a
	// half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Request messages
	ErrMsgMissingPlayerIDError   = "Player id is required"
	ErrMsgMissingDefinitionError = "Item definition id is required"
	ErrMsgInvalidItemCountError  = "Item count must be positive"

	// Catalog messages
	ErrMsgUnknownDefinitionError  = "Unknown item definition"
	ErrMsgUnknownTagError         = "Unknown item tag"
	ErrMsgTagInUseError           = "Item tag is still referenced by a definition"
	ErrMsgDuplicateDefinitionErr  = "Duplicate item definition id"
	ErrMsgEmptyContainerError     = "A container must declare at least one slot"
	ErrMsgUnknownItemSetError     = "An item set still references that item definition"
	ErrMsgUnknownLoadoutTypeError = "Unknown loadout type"

	// Collection messages
	ErrMsgNotOwnedError       = "You don't own that item"
	ErrMsgNotAContainerError  = "That item is not a container"
	ErrMsgUnknownLoadoutError = "Loadout not found"
	ErrMsgInvalidLoadoutError = "Loadout violates the rules of its type"
	ErrMsgAlreadyClaimedError = "Item set has already been claimed"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrMissingPlayerID):
		return http.StatusBadRequest, ErrMsgMissingPlayerIDError
	case errors.Is(err, domain.ErrMissingItemDefinition):
		return http.StatusBadRequest, ErrMsgMissingDefinitionError
	case errors.Is(err, domain.ErrInvalidItemCount):
		return http.StatusBadRequest, ErrMsgInvalidItemCountError
	case errors.Is(err, domain.ErrUnknownItemDefinition):
		return http.StatusBadRequest, ErrMsgUnknownDefinitionError
	case errors.Is(err, domain.ErrUnknownItemTag):
		return http.StatusBadRequest, ErrMsgUnknownTagError
	case errors.Is(err, domain.ErrItemTagInUse):
		return http.StatusBadRequest, ErrMsgTagInUseError
	case errors.Is(err, catalog.ErrDuplicateDefinition):
		return http.StatusBadRequest, ErrMsgDuplicateDefinitionErr
	case errors.Is(err, catalog.ErrEmptyContainer):
		return http.StatusBadRequest, ErrMsgEmptyContainerError
	case errors.Is(err, domain.ErrUnknownItemSet):
		return http.StatusBadRequest, ErrMsgUnknownItemSetError
	case errors.Is(err, domain.ErrPlayerDoesNotOwnItem):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrItemNotAContainer):
		return http.StatusBadRequest, ErrMsgNotAContainerError
	case errors.Is(err, domain.ErrUnknownLoadout):
		return http.StatusNotFound, ErrMsgUnknownLoadoutError
	case errors.Is(err, domain.ErrUnknownLoadoutType):
		return http.StatusBadRequest, ErrMsgUnknownLoadoutTypeError
	case errors.Is(err, domain.ErrInvalidLoadout):
		return http.StatusBadRequest, ErrMsgInvalidLoadoutError
	case errors.Is(err, domain.ErrItemSetAlreadyClaimed):
		return http.StatusConflict, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrEmptySlotPool):
		// Catalog misconfiguration, never the caller's fault.
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError writes the mapped HTTP response for a service error
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
