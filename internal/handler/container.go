package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opengamebackend/collection/internal/container"
	"github.com/opengamebackend/collection/internal/logger"
)

// OpenContainerResponse lists the items a container opening produced
type OpenContainerResponse struct {
	AddedItems map[string]int `json:"added_items"`
}

// HandleOpenContainer opens one of the calling player's containers
// @Summary Open a container
// @Description Consume units of an owned container item and receive its randomized rewards
// @Tags collection
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Param definitionId path string true "Container item definition ID"
// @Success 200 {object} OpenContainerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /client/collection/{definitionId}/open [post]
func HandleOpenContainer(svc container.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)
		definitionID := chi.URLParam(r, "definitionId")

		added, err := svc.Open(r.Context(), playerID, definitionID)
		if err != nil {
			log.Error("Failed to open container", "error", err, "player_id", playerID, "definition", definitionID)
			respondServiceError(w, err)
			return
		}

		log.Info("Container opened", "player_id", playerID, "definition", definitionID, "rewards", len(added))
		respondJSON(w, http.StatusOK, OpenContainerResponse{AddedItems: added})
	}
}
