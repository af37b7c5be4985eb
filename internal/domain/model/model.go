// Package model contains domain models passed between layers.
package model

import "time"

// Kind discriminates how a category is tallied and evaluated.
// The set is closed; every component dispatches on it with a switch.
type Kind string

// Category kinds.
const (
	KindStandard           Kind = "standard"
	KindPropositionYesNo   Kind = "proposition-yes-no"
	KindPropositionNumeric Kind = "proposition-numeric"
	KindAggregateOverall   Kind = "aggregate-overall"
)

// Category is a competition grouping users predict an outcome for:
// a sport+gender combination, a proposition question, or the aggregate
// overall category. Immutable reference data, loaded once per request.
type Category struct {
	ID          string    `json:"id"`
	Sport       string    `json:"sport"`
	Gender      string    `json:"gender,omitempty"` // "Men", "Women", "Mixed", "" for Overall/propositions
	DisplayName string    `json:"display_name"`
	Kind        Kind      `json:"kind"`
	EventCount  int       `json:"event_count"` // gold medals this category comprises
	FirstEvent  time.Time `json:"first_event"`
	LastEvent   time.Time `json:"last_event"`
}

// ScheduledEvent is one gold-medal event belonging to a category.
type ScheduledEvent struct {
	ID        string    `json:"id"`
	Sport     string    `json:"sport"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	StartTime time.Time `json:"start_time"` // when the gold medal is decided
	Resolved  bool      `json:"resolved"`
}

// CompletedResult is a raw scraped record for one decided event. The name is
// free text and may be misspelled or formatted differently from the schedule;
// the matcher resolves it. Winner may carry several countries separated by
// " / " when golds were shared, or a proposition outcome value.
type CompletedResult struct {
	Sport     string    `json:"sport"`
	EventName string    `json:"event_name"`
	Winner    string    `json:"winner"`
	Timestamp time.Time `json:"timestamp"`
}

// SharedWinnerSeparator splits tied golds in a CompletedResult winner field.
const SharedWinnerSeparator = " / "

// Prediction is a user's pick for one category: a country name, or a
// yes/no or numeric value for proposition categories.
type Prediction struct {
	CategoryID string `json:"category_id"`
	Pick       string `json:"pick"`
}

// PredictionSet groups one user's predictions.
type PredictionSet struct {
	ID          string       `json:"id"`
	Owner       string       `json:"owner"`
	Predictions []Prediction `json:"predictions"`
}

// CategoryStanding is the derived medal state of one category, recomputed
// fresh each request from raw inputs.
type CategoryStanding struct {
	CategoryID string `json:"category_id"`
	// GoldCounts maps country name to gold tally. Empty until the first
	// event of the category resolves.
	GoldCounts map[string]int `json:"gold_counts"`
	// Leaders holds the countries tied for the maximum tally, ordered by
	// when each first reached it. Empty iff no event has resolved.
	Leaders   []string `json:"leaders"`
	Remaining int      `json:"remaining"`
	Completed int      `json:"completed"`
	// NextEvent is the earliest unresolved event, nil when none remain.
	NextEvent *ScheduledEvent `json:"next_event,omitempty"`
	// PropResolved and PropOutcome carry proposition state; gold tallies
	// are meaningless for proposition kinds.
	PropResolved bool   `json:"prop_resolved,omitempty"`
	PropOutcome  string `json:"prop_outcome,omitempty"`
}

// LeaderCount returns the shared tally of the leader set, zero when no
// event has resolved.
func (s *CategoryStanding) LeaderCount() int {
	if len(s.Leaders) == 0 {
		return 0
	}
	return s.GoldCounts[s.Leaders[0]]
}

// Status classifies a prediction's viability against the current standing.
type Status string

// Prediction statuses.
const (
	StatusLeading            Status = "leading"
	StatusTied               Status = "tied"
	StatusBehindPossible     Status = "behind_possible"
	StatusEliminated         Status = "eliminated"
	StatusPropositionPending Status = "proposition_pending"
)

// Rank orders statuses for output sorting: eliminated sorts last.
func (s Status) Rank() int {
	if s == StatusEliminated {
		return 1
	}
	return 0
}

// Urgency buckets how soon a category's next unresolved event occurs.
type Urgency string

// Urgency levels.
const (
	UrgencyToday    Urgency = "today"
	UrgencyThisWeek Urgency = "this_week"
	UrgencyLater    Urgency = "later"
	UrgencyNone     Urgency = "none"
)

// Rank orders urgencies for output sorting: sooner sorts first.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyToday:
		return 0
	case UrgencyThisWeek:
		return 1
	case UrgencyLater:
		return 2
	default:
		return 3
	}
}

// RootingInfo is the engine's output record for one prediction.
type RootingInfo struct {
	Category   Category         `json:"category"`
	Prediction Prediction       `json:"prediction"`
	Standing   CategoryStanding `json:"standing"`
	Status     Status           `json:"status"`
	// Scenarios narrates what must happen, one line per scenario.
	Scenarios []string        `json:"scenarios"`
	Urgency   Urgency         `json:"urgency"`
	NextEvent *ScheduledEvent `json:"next_event,omitempty"`
	// Upcoming lists the next unresolved events, capped for the aggregate
	// category to bound output size.
	Upcoming []ScheduledEvent `json:"upcoming,omitempty"`
}
