// Package service provides the core business service that orchestrates
// the rooting evaluation and implements the dependencies required by the
// HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/okian/podium/internal/adapters/catalog"
	"github.com/okian/podium/internal/adapters/results"
	"github.com/okian/podium/internal/domain/eligibility"
	"github.com/okian/podium/internal/domain/match"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/narrate"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/standings"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/internal/domain/urgency"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Skip reasons surfaced in logs and metrics when a prediction is omitted
// from the rooting output.
const (
	skipUnknownCategory = "unknown_category"
	skipAlreadyOfficial = "already_official"
	skipNoEventsStarted = "no_events_started"
	skipAwaitingResult  = "awaiting_official_result"
	skipInvalidPick     = "invalid_pick"
)

const defaultMaxUpcoming = 10

// Service evaluates rooting recommendations for prediction sets. All
// heavy lifting happens in pure domain packages; the service sequences
// them, applies category-kind special casing, and reports skips and
// matcher misses to observability.
type Service struct {
	catalog     catalog.Store
	source      results.Source
	calc        *standings.Calculator
	zone        *time.Location
	maxUpcoming int
	log         logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the category/schedule store.
func WithCatalog(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
		}
	}
}

// WithSource sets the completed-result source.
func WithSource(src results.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithMatcher sets the event matcher used for standings calculation.
func WithMatcher(m *match.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.calc = standings.New(standings.WithMatcher(m))
		}
	}
}

// WithTimezone sets the reference zone urgency is evaluated in.
func WithTimezone(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.zone = loc
		}
	}
}

// WithMaxUpcoming caps the upcoming-events list for the aggregate
// overall category.
func WithMaxUpcoming(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUpcoming = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Service with configuration options. A catalog and a
// source must be provided before calling Rooting.
func New(opts ...Option) *Service {
	s := &Service{
		calc:        standings.New(),
		zone:        time.UTC,
		maxUpcoming: defaultMaxUpcoming,
		log:         logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rooting evaluates every prediction in the set against current
// standings and returns recommendation records sorted by urgency, then
// status (eliminated last), then category display name. The reference
// time is explicit so evaluations are deterministic and testable.
func (s *Service) Rooting(ctx context.Context, set model.PredictionSet, now time.Time) ([]model.RootingInfo, error) {
	started := time.Now()
	defer func() {
		metrics.RecordRootingRequest()
		metrics.RecordRootingDuration(time.Since(started).Seconds())
	}()

	cats := s.catalog.Categories(ctx)
	events := s.catalog.Events(ctx)
	completed, err := s.source.Completed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load completed results: %w", err)
	}
	official, err := s.source.Official(ctx)
	if err != nil {
		return nil, fmt.Errorf("load official results: %w", err)
	}

	// Standard standings are computed first: the aggregate overall
	// standing is a lens over them, never an independent tally.
	comps := map[string]standings.Computation{}
	var standardParts []standings.Computation
	var overallCat *model.Category
	for _, cat := range cats {
		switch cat.Kind {
		case model.KindStandard:
			comp := s.calc.Calculate(cat, completed, events)
			s.reportMatchQuality(ctx, cat, comp)
			comps[cat.ID] = comp
			standardParts = append(standardParts, comp)
			metrics.RecordStandingComputed()
		case model.KindPropositionYesNo, model.KindPropositionNumeric:
			comps[cat.ID] = s.calc.CalculateProposition(cat, completed)
			metrics.RecordStandingComputed()
		case model.KindAggregateOverall:
			c := cat
			overallCat = &c
		}
	}
	if overallCat != nil {
		comps[overallCat.ID] = s.calc.CalculateOverall(*overallCat, standardParts, events)
		metrics.RecordStandingComputed()
	}

	// Results no category claims bypass every per-category calculation;
	// report them as misses so feed drift is visible in observability.
	for _, orphan := range standings.Orphaned(cats, completed) {
		metrics.RecordMatcherMiss()
		s.log.Warn(ctx, "completed result matched no category",
			logger.String("sport", orphan.Sport),
			logger.String("event_name", orphan.EventName),
			logger.Time("timestamp", orphan.Timestamp))
	}

	localNow := now.In(s.zone)
	var out []model.RootingInfo
	for _, pred := range set.Predictions {
		cat, err := s.catalog.CategoryByID(ctx, pred.CategoryID)
		if err != nil {
			s.skip(ctx, pred, skipUnknownCategory)
			continue
		}
		comp := comps[cat.ID]

		info, reason, err := s.evaluate(cat, comp, pred, official, events, localNow)
		if err != nil {
			if errors.Is(err, eligibility.ErrEmptyLeaderSet) {
				// Broken standings calculator, not bad data. Fail loudly.
				metrics.RecordInvariantViolation()
				s.log.Error(ctx, "standing invariant violated",
					logger.String("category", cat.ID), logger.Error(err))
				return nil, err
			}
			s.log.Warn(ctx, "prediction not evaluable",
				logger.String("category", cat.ID),
				logger.String("pick", pred.Pick),
				logger.Error(err))
			metrics.RecordPredictionSkipped(skipInvalidPick)
			continue
		}
		if reason != "" {
			s.skip(ctx, pred, reason)
			continue
		}
		out = append(out, info)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if a, b := out[i].Urgency.Rank(), out[j].Urgency.Rank(); a != b {
			return a < b
		}
		if a, b := out[i].Status.Rank(), out[j].Status.Rank(); a != b {
			return a < b
		}
		return out[i].Category.DisplayName < out[j].Category.DisplayName
	})
	return out, nil
}

// evaluate assembles one RootingInfo, or a non-empty skip reason when the
// category is not worth rooting for right now.
func (s *Service) evaluate(
	cat model.Category,
	comp standings.Computation,
	pred model.Prediction,
	official map[string]string,
	events []model.ScheduledEvent,
	localNow time.Time,
) (model.RootingInfo, string, error) {
	if _, done := official[cat.ID]; done {
		return model.RootingInfo{}, skipAlreadyOfficial, nil
	}

	standing := comp.Standing
	countryKind := cat.Kind == model.KindStandard || cat.Kind == model.KindAggregateOverall
	if countryKind && standing.Completed == 0 {
		// Nothing to root for until the first gold is decided.
		return model.RootingInfo{}, skipNoEventsStarted, nil
	}

	status, err := eligibility.Evaluate(standing, pred, cat)
	if err != nil {
		return model.RootingInfo{}, "", err
	}

	// With every event complete the evaluator settles on a terminal
	// status, and those records stay in the output: leaders waiting for
	// the official entry, shared wins, and losses. A non-terminal status
	// at zero remaining means inconsistent upstream data.
	if countryKind && standing.Remaining == 0 && status == model.StatusBehindPossible {
		return model.RootingInfo{}, skipAwaitingResult, nil
	}

	info := model.RootingInfo{
		Category:   cat,
		Prediction: pred,
		Standing:   standing,
		Status:     status,
		Scenarios:  narrate.Scenarios(status, standing, pred, cat),
		NextEvent:  standing.NextEvent,
	}

	var nextAt time.Time
	if standing.NextEvent != nil {
		nextAt = standing.NextEvent.StartTime.In(s.zone)
	}
	info.Urgency = urgency.Classify(nextAt, localNow)

	switch cat.Kind {
	case model.KindAggregateOverall:
		info.Upcoming = standings.Upcoming(events, comp.ResolvedEvents, s.maxUpcoming)
	case model.KindStandard:
		info.Upcoming = standings.Upcoming(standings.EventsFor(cat, events), comp.ResolvedEvents, 0)
	}
	return info, "", nil
}

// Standing computes one category's standing on demand.
func (s *Service) Standing(ctx context.Context, categoryID string) (model.CategoryStanding, error) {
	cat, err := s.catalog.CategoryByID(ctx, categoryID)
	if err != nil {
		return model.CategoryStanding{}, err
	}
	events := s.catalog.Events(ctx)
	completed, err := s.source.Completed(ctx)
	if err != nil {
		return model.CategoryStanding{}, fmt.Errorf("load completed results: %w", err)
	}

	switch cat.Kind {
	case model.KindPropositionYesNo, model.KindPropositionNumeric:
		return s.calc.CalculateProposition(cat, completed).Standing, nil
	case model.KindAggregateOverall:
		var parts []standings.Computation
		for _, c := range s.catalog.Categories(ctx) {
			if c.Kind == model.KindStandard {
				parts = append(parts, s.calc.Calculate(c, completed, events))
			}
		}
		return s.calc.CalculateOverall(cat, parts, events).Standing, nil
	default:
		comp := s.calc.Calculate(cat, completed, events)
		s.reportMatchQuality(ctx, cat, comp)
		return comp.Standing, nil
	}
}

// Scores ranks prediction sets against officially entered results.
func (s *Service) Scores(ctx context.Context, sets []model.PredictionSet) ([]types.ScoreEntry, error) {
	official, err := s.source.Official(ctx)
	if err != nil {
		return nil, fmt.Errorf("load official results: %w", err)
	}
	return scoring.Score(sets, official), nil
}

// Stats reports reference-data volumes for the stats endpoint.
func (s *Service) Stats(ctx context.Context) map[string]any {
	completed, _ := s.source.Completed(ctx)
	official, _ := s.source.Official(ctx)
	return map[string]any{
		"categories":       len(s.catalog.Categories(ctx)),
		"scheduledEvents":  len(s.catalog.Events(ctx)),
		"completedResults": len(completed),
		"officialResults":  len(official),
		"timezone":         s.zone.String(),
	}
}

func (s *Service) skip(ctx context.Context, pred model.Prediction, reason string) {
	metrics.RecordPredictionSkipped(reason)
	s.log.Debug(ctx, "prediction skipped",
		logger.String("category", pred.CategoryID),
		logger.String("reason", reason))
}

// reportMatchQuality forwards matcher outcomes to observability. Misses
// mean scrape data quality drifted, not that evaluation failed.
func (s *Service) reportMatchQuality(ctx context.Context, cat model.Category, comp standings.Computation) {
	for _, miss := range comp.Unmatched {
		metrics.RecordMatcherMiss()
		s.log.Warn(ctx, "completed result matched no scheduled event",
			logger.String("category", cat.ID),
			logger.String("event_name", miss.EventName),
			logger.Time("timestamp", miss.Timestamp))
	}
	for i := 0; i < comp.Matched; i++ {
		metrics.RecordResultMatched()
	}
	for i := 0; i < comp.Duplicates; i++ {
		metrics.RecordDuplicateResult()
	}
}
