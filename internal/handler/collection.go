package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opengamebackend/collection/internal/collection"
	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
)

// CollectionResponse represents a player's collection
type CollectionResponse struct {
	Items []domain.CollectionEntry `json:"items"`
}

// HandleGetCollection returns the calling player's collection
// @Summary Get own collection
// @Description List every item the calling player owns, with counts and tags
// @Tags collection
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Success 200 {object} CollectionResponse
// @Failure 400 {object} ErrorResponse
// @Router /client/collection [get]
func HandleGetCollection(svc collection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)
		if playerID == "" {
			respondServiceError(w, domain.ErrMissingPlayerID)
			return
		}

		items, err := svc.GetCollection(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get collection", "error", err, "player_id", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, CollectionResponse{Items: items})
	}
}

// HandleGetCollectionAdmin returns any player's collection
// @Summary Get a player's collection
// @Description List every item the given player owns (admin view)
// @Tags collection
// @Produce json
// @Param playerId path string true "Player ID"
// @Success 200 {object} CollectionResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/collection/{playerId} [get]
func HandleGetCollectionAdmin(svc collection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerId")

		items, err := svc.GetCollection(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get collection", "error", err, "player_id", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, CollectionResponse{Items: items})
	}
}

type AddCollectionItemRequest struct {
	ItemDefinitionID string `json:"item_definition_id" validate:"required,itemid"`
	ItemCount        int    `json:"item_count"`
}

// HandleAddCollectionItems credits items to a player's collection
// @Summary Add items to a collection
// @Description Credit units of an item definition to a player (admin/system action)
// @Tags collection
// @Accept json
// @Produce json
// @Param playerId path string true "Player ID"
// @Param request body AddCollectionItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/collection/{playerId}/items [post]
func HandleAddCollectionItems(svc collection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerId")

		var req AddCollectionItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add items request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := svc.AddItems(r.Context(), playerID, req.ItemDefinitionID, req.ItemCount); err != nil {
			log.Error("Failed to add items", "error", err, "player_id", playerID, "definition", req.ItemDefinitionID)
			respondServiceError(w, err)
			return
		}

		log.Info("Items added", "player_id", playerID, "definition", req.ItemDefinitionID, "count", req.ItemCount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Items added"})
	}
}

type SetCollectionItemRequest struct {
	ItemCount int `json:"item_count"`
}

// HandleSetCollectionItems overwrites the count of an owned item
// @Summary Set an item count
// @Description Overwrite the count of an item the player already owns
// @Tags collection
// @Accept json
// @Produce json
// @Param playerId path string true "Player ID"
// @Param definitionId path string true "Item definition ID"
// @Param request body SetCollectionItemRequest true "New count"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/collection/{playerId}/items/{definitionId} [put]
func HandleSetCollectionItems(svc collection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerId")
		definitionID := chi.URLParam(r, "definitionId")

		var req SetCollectionItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode set items request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := svc.SetItems(r.Context(), playerID, definitionID, req.ItemCount); err != nil {
			log.Error("Failed to set item count", "error", err, "player_id", playerID, "definition", definitionID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item count set", "player_id", playerID, "definition", definitionID, "count", req.ItemCount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item count updated"})
	}
}

// HandleRemoveCollectionItems deletes a collection entry
// @Summary Remove an item
// @Description Remove a player's entry for an item definition regardless of count
// @Tags collection
// @Produce json
// @Param playerId path string true "Player ID"
// @Param definitionId path string true "Item definition ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/collection/{playerId}/items/{definitionId} [delete]
func HandleRemoveCollectionItems(svc collection.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerId")
		definitionID := chi.URLParam(r, "definitionId")

		if err := svc.RemoveItems(r.Context(), playerID, definitionID); err != nil {
			log.Error("Failed to remove items", "error", err, "player_id", playerID, "definition", definitionID)
			respondServiceError(w, err)
			return
		}

		log.Info("Items removed", "player_id", playerID, "definition", definitionID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Items removed"})
	}
}
