package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/podium/internal/domain/model"
)

// ScoresHandler handles pool scoring requests.
type ScoresHandler struct {
	deps Dependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps Dependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

type scoresRequest struct {
	Sets []model.PredictionSet `json:"sets"`
}

// HandlePostScores handles POST /scores requests: it ranks the supplied
// prediction sets against officially entered category results.
func (h *ScoresHandler) HandlePostScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if len(req.Sets) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entries, err := h.deps.Scores(r.Context(), req.Sets)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
