// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/podium/internal/adapters/catalog"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Rooting evaluates a prediction set at the given reference time.
	Rooting(ctx context.Context, set model.PredictionSet, now time.Time) ([]model.RootingInfo, error)

	// Standing computes one category's current standing.
	Standing(ctx context.Context, categoryID string) (model.CategoryStanding, error)

	// Scores ranks prediction sets against official results.
	Scores(ctx context.Context, sets []model.PredictionSet) ([]types.ScoreEntry, error)

	// Stats reports reference-data volumes.
	Stats(ctx context.Context) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootingHandler   *RootingHandler
	standingsHandler *StandingsHandler
	scoresHandler    *ScoresHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		rootingHandler:   NewRootingHandler(deps),
		standingsHandler: NewStandingsHandler(deps),
		scoresHandler:    NewScoresHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rooting", MetricsMiddleware(s.rootingHandler.HandlePostRooting, "rooting"))
	mux.HandleFunc("/standings", MetricsMiddleware(s.standingsHandler.HandleGetStanding, "standings"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandlePostScores, "scores"))
	mux.Handle("/metrics", metrics.Handler())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, catalog.ErrNotFound)
}
