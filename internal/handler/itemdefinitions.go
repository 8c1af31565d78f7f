package handler

import (
	"encoding/json"
	"net/http"

	"github.com/opengamebackend/collection/internal/catalog"
	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
)

// ItemDefinitionsResponse represents the catalog of tags and definitions
type ItemDefinitionsResponse struct {
	ItemTags        []string                `json:"item_tags"`
	ItemDefinitions []domain.ItemDefinition `json:"item_definitions"`
}

// HandleGetItemDefinitions returns the full item catalog
// @Summary Get item definitions
// @Description List every item tag and item definition
// @Tags catalog
// @Produce json
// @Success 200 {object} ItemDefinitionsResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/itemdefinitions [get]
func HandleGetItemDefinitions(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		tags, defs, err := svc.GetItemDefinitions(r.Context())
		if err != nil {
			log.Error("Failed to get item definitions", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, ItemDefinitionsResponse{ItemTags: tags, ItemDefinitions: defs})
	}
}

type PutItemDefinitionsRequest struct {
	ItemDefinitions []domain.ItemDefinition `json:"item_definitions"`
}

// HandlePutItemDefinitions reconciles the item catalog toward the given state
// @Summary Put item definitions
// @Description Declare the desired set of item definitions; tags are implied and the persisted catalog is reconciled toward it
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body PutItemDefinitionsRequest true "Desired definitions"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/itemdefinitions [put]
func HandlePutItemDefinitions(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PutItemDefinitionsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode put item definitions request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := svc.PutItemDefinitions(r.Context(), req.ItemDefinitions); err != nil {
			log.Error("Failed to put item definitions", "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Item definitions reconciled", "count", len(req.ItemDefinitions))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item definitions updated"})
	}
}

// ItemSetsResponse represents the catalog of item sets
type ItemSetsResponse struct {
	ItemSets []domain.ItemSet `json:"item_sets"`
}

// HandleGetItemSets returns every item set
// @Summary Get item sets
// @Description List every item set with its reward lines
// @Tags catalog
// @Produce json
// @Success 200 {object} ItemSetsResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/itemsets [get]
func HandleGetItemSets(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		sets, err := svc.GetItemSets(r.Context())
		if err != nil {
			log.Error("Failed to get item sets", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, ItemSetsResponse{ItemSets: sets})
	}
}

type PutItemSetsRequest struct {
	ItemSets []domain.ItemSet `json:"item_sets"`
}

// HandlePutItemSets reconciles the item sets toward the given state
// @Summary Put item sets
// @Description Declare the desired set of item sets; the persisted sets are reconciled toward it
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body PutItemSetsRequest true "Desired item sets"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/itemsets [put]
func HandlePutItemSets(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PutItemSetsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode put item sets request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := svc.PutItemSets(r.Context(), req.ItemSets); err != nil {
			log.Error("Failed to put item sets", "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Item sets reconciled", "count", len(req.ItemSets))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item sets updated"})
	}
}
