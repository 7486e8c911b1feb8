package handlers

import (
	"net/http"

	"github.com/tippliga/tournament-engine/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	matchService      services.MatchService
}

func NewTournamentHandler(tournamentService services.TournamentService, matchService services.MatchService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		matchService:      matchService,
	}
}

func (h *TournamentHandler) ListTournamentsHandler(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.ListTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListTournamentMatchesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatchesByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
