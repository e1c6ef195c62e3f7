package handlers

import (
	"net/http"

	"github.com/debatetab/tab-system/draw"
	"github.com/debatetab/tab-system/models"
	"github.com/debatetab/tab-system/services"
)

type DrawHandler struct {
	drawService services.DrawService
}

func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

func drawTypeFromQuery(r *http.Request) models.DrawType {
	switch models.DrawType(r.URL.Query().Get("type")) {
	case models.DrawTypePowerPaired:
		return models.DrawTypePowerPaired
	default:
		return models.DrawTypeRandom
	}
}

// Preview godoc
// @Summary      Generate a draw proposal without persisting it
// @Tags         draws
// @Produce      json
// @Param        roundID path int true "round ID"
// @Param        type query string false "draw type (random or power_paired)"
// @Success      200 {object} map[string]interface{}
// @Router       /rounds/{roundID}/draw/preview [post]
func (h *DrawHandler) Preview(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	proposal, err := h.drawService.Preview(r.Context(), roundID, drawTypeFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"proposal": proposal}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Commit generates and persists a draw in one step, replacing any
// previous draw of the round.
func (h *DrawHandler) Commit(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.drawService.Commit(r.Context(), roundID, drawTypeFromQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CommitProposal persists a previously previewed (and possibly hand
// edited) proposal after validating it against the tournament.
func (h *DrawHandler) CommitProposal(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Proposal []*draw.ProposedMatch `json:"proposal"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.drawService.CommitProposal(r.Context(), roundID, input.Proposal)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) Get(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.drawService.GetDraw(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DrawHandler) Release(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.drawService.Release(r.Context(), roundID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "draw released"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
