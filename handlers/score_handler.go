package handlers

import (
	"net/http"

	"github.com/debatetab/tab-system/services"
)

type ScoreHandler struct {
	resultService services.ResultService
}

func NewScoreHandler(resultService services.ResultService) *ScoreHandler {
	return &ScoreHandler{resultService: resultService}
}

// Submit godoc
// @Summary      Submit or overwrite a speaker score
// @Tags         scores
// @Accept       json
// @Produce      json
// @Param        input body services.SubmitScoreInput true "score data"
// @Success      200 {object} services.SubmitScoreOutput
// @Router       /scores [post]
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	output, err := h.resultService.SubmitScore(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"score":    output.Score,
		"resolved": output.Resolved,
	}
	if output.Resolved {
		response["results"] = output.Results
	} else {
		response["status"] = "awaiting_scores"
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Resolve recomputes a match's results from its current scores. Unlike
// submission, an incomplete match is a 409 here: the caller explicitly
// asked for results that cannot exist yet.
func (h *ScoreHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ResolveMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) ListRoundResults(w http.ResponseWriter, r *http.Request) {
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListByRound(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
