package handlers

import (
	"errors"
	"net/http"

	"github.com/tippliga/tournament-engine/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type saveMatchRequest struct {
	GoalNormal1  *int `json:"goal_normal1"`
	GoalNormal2  *int `json:"goal_normal2"`
	GoalExtra1   *int `json:"goal_extra1"`
	GoalExtra2   *int `json:"goal_extra2"`
	GoalPenalty1 *int `json:"goal_penalty1"`
	GoalPenalty2 *int `json:"goal_penalty2"`
}

// SaveMatchResultHandler enters a result for a match. Violations come back
// as a 422 with the full list; a complete result advances the bracket and
// the bet scores before the response is written.
func (h *MatchHandler) SaveMatchResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req saveMatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	in := services.SaveMatchInput{
		MatchID:      matchID,
		GoalNormal1:  req.GoalNormal1,
		GoalNormal2:  req.GoalNormal2,
		GoalExtra1:   req.GoalExtra1,
		GoalExtra2:   req.GoalExtra2,
		GoalPenalty1: req.GoalPenalty1,
		GoalPenalty2: req.GoalPenalty2,
	}

	// The stage facts come from the stored match; a missing match still
	// passes through SaveMatch so the violation list is complete.
	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil && !errors.Is(err, services.ErrMatchNotFound) {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if match != nil && match.Round != nil {
		in.IsGroupMatch = match.Round.IsGroupRound
		in.IsOvertimeAllowed = match.Round.IsOvertimeAllowed
		in.StartTime = match.StartTime
	}

	saved, err := h.matchService.SaveMatch(r.Context(), in)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": saved}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
