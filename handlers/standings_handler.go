package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tippliga/tournament-engine/progression"
	"github.com/tippliga/tournament-engine/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) GetGroupStandingsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	label := chi.URLParam(r, "groupLabel")

	standings, err := h.standingsService.GetGroupStandings(r.Context(), tournamentID, label)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResolveGroupPositionHandler answers "who holds position P of group(s) G",
// including combined labels like ACD. A pending resolution is not an error;
// it comes back as resolved=false.
func (h *StandingsHandler) ResolveGroupPositionHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	label := chi.URLParam(r, "groupLabel")
	position, err := strconv.Atoi(r.URL.Query().Get("position"))
	if err != nil || position < 1 {
		badRequestResponse(w, r, services.ErrInvalidGroupPosition)
		return
	}

	team, err := h.standingsService.ResolveGroupPosition(r.Context(), tournamentID,
		progression.GroupPosition{Label: label, Position: position})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"resolved": team != nil}
	if team != nil {
		response["team"] = team
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
