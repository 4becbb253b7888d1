package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/karimdoss-design/campustad/services"
	"github.com/karimdoss-design/campustad/standings"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

func (h *StandingsHandler) GroupTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.standingsService.GroupTables(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tables": tables}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) KnockoutRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.standingsService.KnockoutRounds(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, standings.LeaderboardScorers)
}

func (h *StandingsHandler) TopAssisters(w http.ResponseWriter, r *http.Request) {
	h.leaderboard(w, r, standings.LeaderboardAssisters)
}

func (h *StandingsHandler) leaderboard(w http.ResponseWriter, r *http.Request, kind standings.LeaderboardKind) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit parameter"))
			return
		}
		limit = parsed
	}

	entries, err := h.standingsService.Leaderboard(r.Context(), kind, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
