package handlers

import (
	"net/http"

	"github.com/fbessa/tournament-server/services"
)

type ConquestHandler struct {
	conquestService services.ConquestService
}

func NewConquestHandler(cs services.ConquestService) *ConquestHandler {
	return &ConquestHandler{conquestService: cs}
}

// MapHandler handles GET /tournaments/{tournamentID}/map.
func (h *ConquestHandler) MapHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.conquestService.Map(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"map": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeclareAttackHandler handles POST /tournaments/{tournamentID}/attacks.
func (h *ConquestHandler) DeclareAttackHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.DeclareAttackInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	attack, err := h.conquestService.DeclareAttack(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"attack": attack}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResolveAttackHandler handles POST /tournaments/{tournamentID}/attacks/{matchID}/resolve.
func (h *ConquestHandler) ResolveAttackHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.FinalizeMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.conquestService.ResolveAttack(r.Context(), tournamentID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
