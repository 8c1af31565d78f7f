package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opengamebackend/collection/internal/claim"
	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/logger"
)

// ClaimItemSetResponse reports the outcome of a claim attempt. Claimed is
// false when the player has already claimed every set.
type ClaimItemSetResponse struct {
	Claimed   bool                  `json:"claimed"`
	ItemSetID string                `json:"item_set_id,omitempty"`
	Items     []domain.ItemSetEntry `json:"items,omitempty"`
}

// HandleClaimItemSet claims the next unclaimed item set for the caller
// @Summary Claim an item set
// @Description Grant the next item set the calling player has not claimed yet
// @Tags claims
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Success 200 {object} ClaimItemSetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /client/claimitemset [post]
func HandleClaimItemSet(svc claim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)

		set, err := svc.Claim(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to claim item set", "error", err, "player_id", playerID)
			respondServiceError(w, err)
			return
		}

		if set == nil {
			respondJSON(w, http.StatusOK, ClaimItemSetResponse{Claimed: false})
			return
		}

		log.Info("Item set claimed", "player_id", playerID, "item_set", set.ID)
		respondJSON(w, http.StatusOK, ClaimItemSetResponse{
			Claimed:   true,
			ItemSetID: set.ID,
			Items:     set.Items,
		})
	}
}

// ClaimedItemSetsResponse lists the ids of the sets a player has claimed
type ClaimedItemSetsResponse struct {
	ItemSetIDs []string `json:"item_set_ids"`
}

// HandleGetClaimedItemSets returns the sets a player has claimed
// @Summary Get claimed item sets
// @Description List the ids of every item set the given player has claimed
// @Tags claims
// @Produce json
// @Param playerId path string true "Player ID"
// @Success 200 {object} ClaimedItemSetsResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/claimeditemsets/{playerId} [get]
func HandleGetClaimedItemSets(svc claim.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := chi.URLParam(r, "playerId")

		ids, err := svc.GetClaimedItemSets(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get claimed item sets", "error", err, "player_id", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, ClaimedItemSetsResponse{ItemSetIDs: ids})
	}
}
