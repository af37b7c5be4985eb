package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/podium/internal/adapters/catalog"
	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps implements api.Dependencies with canned responses.
type stubDeps struct {
	infos       []model.RootingInfo
	rootingErr  error
	standing    model.CategoryStanding
	standingErr error
	entries     []types.ScoreEntry
	lastSet     model.PredictionSet
	lastNow     time.Time
}

func (s *stubDeps) Rooting(ctx context.Context, set model.PredictionSet, now time.Time) ([]model.RootingInfo, error) {
	s.lastSet = set
	s.lastNow = now
	return s.infos, s.rootingErr
}

func (s *stubDeps) Standing(ctx context.Context, categoryID string) (model.CategoryStanding, error) {
	return s.standing, s.standingErr
}

func (s *stubDeps) Scores(ctx context.Context, sets []model.PredictionSet) ([]types.ScoreEntry, error) {
	return s.entries, nil
}

func (s *stubDeps) Stats(ctx context.Context) map[string]any {
	return map[string]any{"categories": 3}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func TestHandlePostRooting(t *testing.T) {
	Convey("Given the rooting endpoint", t, func() {
		deps := &stubDeps{infos: []model.RootingInfo{{Status: model.StatusLeading}}}
		mux := newMux(deps)

		Convey("A valid request returns the evaluated records", func() {
			body := `{"owner":"Alice","now":"2026-02-15T12:00:00Z","predictions":[{"category_id":"alpine_skiing_men","pick":"Norway"}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooting", strings.NewReader(body)))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var got []model.RootingInfo
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Status, ShouldEqual, model.StatusLeading)

			Convey("And the reference time is passed through", func() {
				So(deps.lastNow.Equal(time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})

			Convey("And a set id is generated when the client sends none", func() {
				So(deps.lastSet.ID, ShouldNotBeEmpty)
			})
		})

		Convey("A request without predictions is rejected", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooting", strings.NewReader(`{"owner":"Alice"}`)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A prediction without a pick is rejected", func() {
			body := `{"owner":"Alice","predictions":[{"category_id":"alpine_skiing_men"}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooting", strings.NewReader(body)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A malformed reference time is rejected", func() {
			body := `{"owner":"Alice","now":"yesterday","predictions":[{"category_id":"x","pick":"Norway"}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooting", strings.NewReader(body)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An evaluation failure maps to 500", func() {
			deps.rootingErr = fmt.Errorf("standing invariant violated")
			body := `{"owner":"Alice","predictions":[{"category_id":"x","pick":"Norway"}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooting", strings.NewReader(body)))
			So(rec.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("GET is not a route", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooting", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandleGetStanding(t *testing.T) {
	Convey("Given the standings endpoint", t, func() {
		deps := &stubDeps{standing: model.CategoryStanding{
			CategoryID: "alpine_skiing_men",
			GoldCounts: map[string]int{"Switzerland": 2},
			Leaders:    []string{"Switzerland"},
		}}
		mux := newMux(deps)

		Convey("A known category returns its standing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standings?category=alpine_skiing_men", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var got model.CategoryStanding
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got.Leaders, ShouldResemble, []string{"Switzerland"})
		})

		Convey("A missing category parameter is rejected", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standings", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown category maps to 404", func() {
			deps.standingErr = fmt.Errorf("lookup: %w", catalog.ErrNotFound)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standings?category=curling_men", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHandlePostScores(t *testing.T) {
	Convey("Given the scores endpoint", t, func() {
		deps := &stubDeps{entries: []types.ScoreEntry{{Rank: 1, Participant: "Alice", Correct: 2}}}
		mux := newMux(deps)

		Convey("A valid request returns the pool table", func() {
			body := `{"sets":[{"owner":"Alice","predictions":[{"category_id":"luge_men","pick":"Germany"}]}]}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(body)))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var got []types.ScoreEntry
			So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
			So(got[0].Participant, ShouldEqual, "Alice")
		})

		Convey("An empty set list is rejected", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(`{"sets":[]}`)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the service endpoints", t, func() {
		mux := newMux(&stubDeps{})

		Convey("Health reports ok", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Stats returns the dependency's report", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"categories":3`)
		})

		Convey("Error payloads carry a code and message", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(`{}`)))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
			So(rec.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
		})
	})
}
