package handlers

import (
	"net/http"

	"github.com/debatetab/tab-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// Teams godoc
// @Summary      Team standings for a tournament
// @Tags         standings
// @Produce      json
// @Param        id path int true "tournament ID"
// @Success      200 {object} map[string]interface{}
// @Router       /tournaments/{id}/standings/teams [get]
func (h *StandingsHandler) Teams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.TeamStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Speakers godoc
// @Summary      Speaker standings for a tournament
// @Tags         standings
// @Produce      json
// @Param        id path int true "tournament ID"
// @Success      200 {object} map[string]interface{}
// @Router       /tournaments/{id}/standings/speakers [get]
func (h *StandingsHandler) Speakers(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.SpeakerStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
