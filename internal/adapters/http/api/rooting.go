package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// RootingHandler handles rooting evaluation requests.
type RootingHandler struct {
	deps Dependencies
}

// NewRootingHandler creates a new rooting handler.
func NewRootingHandler(deps Dependencies) *RootingHandler {
	return &RootingHandler{deps: deps}
}

// rootingRequest carries one user's prediction set. The reference time is
// optional and defaults to the server's current time; tests and replays
// pass it explicitly.
type rootingRequest struct {
	SetID       string             `json:"set_id,omitempty"`
	Owner       string             `json:"owner"`
	Predictions []model.Prediction `json:"predictions"`
	Now         string             `json:"now,omitempty"` // RFC3339
}

func (r rootingRequest) validate() error {
	if len(r.Predictions) == 0 {
		return errMissingPredictions
	}
	for _, p := range r.Predictions {
		if strings.TrimSpace(p.CategoryID) == "" {
			return errMissingCategoryID
		}
		if strings.TrimSpace(p.Pick) == "" {
			return errMissingPick
		}
	}
	if r.Now != "" {
		if _, err := time.Parse(time.RFC3339, r.Now); err != nil {
			return errInvalidNow
		}
	}
	return nil
}

// HandlePostRooting handles POST /rooting requests.
func (h *RootingHandler) HandlePostRooting(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_rooting"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req rootingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	set := model.PredictionSet{
		ID:          req.SetID,
		Owner:       req.Owner,
		Predictions: req.Predictions,
	}
	if set.ID == "" {
		set.ID = uuid.NewString()
	}

	now := time.Now()
	if req.Now != "" {
		now, _ = time.Parse(time.RFC3339, req.Now)
	}

	infos, err := h.deps.Rooting(r.Context(), set, now)
	if err != nil {
		logger.Get().Error(r.Context(), "rooting evaluation failed",
			logger.String("op", op),
			logger.String("set_id", set.ID),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}
