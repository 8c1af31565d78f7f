package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opengamebackend/collection/internal/domain"
	"github.com/opengamebackend/collection/internal/loadout"
	"github.com/opengamebackend/collection/internal/logger"
)

type AddLoadoutRequest struct {
	Type  string                `json:"type" validate:"required"`
	Items []domain.LoadoutEntry `json:"items"`
}

// AddLoadoutResponse carries the id of a newly created loadout
type AddLoadoutResponse struct {
	LoadoutID string `json:"loadout_id"`
}

// HandleAddLoadout creates a validated loadout for the caller
// @Summary Create a loadout
// @Description Create a loadout of the given type; the items must satisfy the type's rules
// @Tags loadouts
// @Accept json
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Param request body AddLoadoutRequest true "Loadout"
// @Success 200 {object} AddLoadoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /client/loadouts [post]
func HandleAddLoadout(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)

		var req AddLoadoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add loadout request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		id, err := svc.AddLoadout(r.Context(), playerID, req.Type, req.Items)
		if err != nil {
			log.Error("Failed to add loadout", "error", err, "player_id", playerID, "type", req.Type)
			respondServiceError(w, err)
			return
		}

		log.Info("Loadout created", "player_id", playerID, "loadout_id", id, "type", req.Type)
		respondJSON(w, http.StatusOK, AddLoadoutResponse{LoadoutID: id})
	}
}

// LoadoutsResponse lists a player's loadouts
type LoadoutsResponse struct {
	Loadouts []domain.Loadout `json:"loadouts"`
}

// HandleGetLoadouts lists the caller's loadouts
// @Summary Get own loadouts
// @Description List every loadout of the calling player
// @Tags loadouts
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Success 200 {object} LoadoutsResponse
// @Failure 400 {object} ErrorResponse
// @Router /client/loadouts [get]
func HandleGetLoadouts(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)

		loadouts, err := svc.GetLoadouts(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get loadouts", "error", err, "player_id", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, LoadoutsResponse{Loadouts: loadouts})
	}
}

type PutLoadoutRequest struct {
	Type  string                `json:"type" validate:"required"`
	Items []domain.LoadoutEntry `json:"items"`
}

// HandlePutLoadout replaces one of the caller's loadouts
// @Summary Update a loadout
// @Description Replace the type and items of an owned loadout; the result must satisfy the type's rules
// @Tags loadouts
// @Accept json
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Param loadoutId path string true "Loadout ID"
// @Param request body PutLoadoutRequest true "Loadout"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /client/loadouts/{loadoutId} [put]
func HandlePutLoadout(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)
		loadoutID := chi.URLParam(r, "loadoutId")

		var req PutLoadoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode put loadout request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := svc.PutLoadout(r.Context(), playerID, loadoutID, req.Type, req.Items); err != nil {
			log.Error("Failed to update loadout", "error", err, "player_id", playerID, "loadout_id", loadoutID)
			respondServiceError(w, err)
			return
		}

		log.Info("Loadout updated", "player_id", playerID, "loadout_id", loadoutID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Loadout updated"})
	}
}

// HandleDeleteLoadout deletes one of the caller's loadouts
// @Summary Delete a loadout
// @Description Delete an owned loadout
// @Tags loadouts
// @Produce json
// @Param Player-Id header string true "Player ID"
// @Param loadoutId path string true "Loadout ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /client/loadouts/{loadoutId} [delete]
func HandleDeleteLoadout(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := playerIDFromRequest(r)
		loadoutID := chi.URLParam(r, "loadoutId")

		if err := svc.DeleteLoadout(r.Context(), playerID, loadoutID); err != nil {
			log.Error("Failed to delete loadout", "error", err, "player_id", playerID, "loadout_id", loadoutID)
			respondServiceError(w, err)
			return
		}

		log.Info("Loadout deleted", "player_id", playerID, "loadout_id", loadoutID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Loadout deleted"})
	}
}

// LoadoutTypesResponse lists every loadout type
type LoadoutTypesResponse struct {
	LoadoutTypes []domain.LoadoutType `json:"loadout_types"`
}

// HandleGetLoadoutTypes returns every loadout type
// @Summary Get loadout types
// @Description List every loadout type with its rules
// @Tags loadouts
// @Produce json
// @Success 200 {object} LoadoutTypesResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/loadouttypes [get]
func HandleGetLoadoutTypes(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		types, err := svc.GetLoadoutTypes(r.Context())
		if err != nil {
			log.Error("Failed to get loadout types", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, LoadoutTypesResponse{LoadoutTypes: types})
	}
}

type PutLoadoutTypesRequest struct {
	LoadoutTypes []domain.LoadoutType `json:"loadout_types"`
}

// HandlePutLoadoutTypes replaces every loadout type
// @Summary Put loadout types
// @Description Declare the desired loadout types; the persisted types are replaced wholesale
// @Tags loadouts
// @Accept json
// @Produce json
// @Param request body PutLoadoutTypesRequest true "Desired loadout types"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/loadouttypes [put]
func HandlePutLoadoutTypes(svc loadout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PutLoadoutTypesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode put loadout types request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
			return
		}

		if err := svc.PutLoadoutTypes(r.Context(), req.LoadoutTypes); err != nil {
			log.Error("Failed to put loadout types", "error", err)
			respondServiceError(w, err)
			return
		}

		log.Info("Loadout types replaced", "count", len(req.LoadoutTypes))
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Loadout types updated"})
	}
}
