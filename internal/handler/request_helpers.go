package handler

import (
	"net/http"
	"strings"
)

// HeaderPlayerID carries the calling player's id on client routes.
const HeaderPlayerID = "Player-Id"

// playerIDFromRequest extracts the player id header. An empty result is left
// for the service layer to reject so the precondition order stays in one
// place.
func playerIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderPlayerID))
}
