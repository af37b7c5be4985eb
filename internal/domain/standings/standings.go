// Package standings folds matched completed results into per-category
// medal tallies. Calculations are pure functions of their inputs: the
// same results and schedule always produce the same standing, and no
// state is kept between calls.
package standings

import (
	"sort"
	"strings"

	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/match"
	"github.com/okian/podium/internal/domain/model"
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithMatcher sets the event matcher used to resolve raw result names.
func WithMatcher(m *match.Matcher) Option {
	return func(c *Calculator) {
		if m != nil {
			c.matcher = m
		}
	}
}

// Calculator computes category standings from raw inputs.
type Calculator struct {
	matcher *match.Matcher
}

// New creates a Calculator with configuration options.
func New(opts ...Option) *Calculator {
	c := &Calculator{matcher: match.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Computation bundles a standing with the matcher bookkeeping the
// orchestrator needs: which scheduled events were credited and which raw
// results matched nothing.
type Computation struct {
	Standing model.CategoryStanding
	// ResolvedEvents maps scheduled event id to true for every event
	// credited with a completed result or pre-flagged resolved.
	ResolvedEvents map[string]bool
	// Unmatched holds this category's raw results that no candidate
	// event cleared the matching threshold for.
	Unmatched []model.CompletedResult
	// Matched and Duplicates count raw results credited to an event and
	// dropped as repeats, respectively.
	Matched    int
	Duplicates int
}

// Calculate derives the standing of a standard category from the raw
// completed results and the category's scheduled events.
func (c *Calculator) Calculate(cat model.Category, results []model.CompletedResult, events []model.ScheduledEvent) Computation {
	candidates := candidatesFor(cat, events)

	comp := Computation{
		Standing: model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{},
		},
		ResolvedEvents: map[string]bool{},
	}
	for _, ev := range candidates {
		if ev.Event.Resolved {
			comp.ResolvedEvents[ev.Event.ID] = true
		}
	}

	// Replay results in timestamp order so leader ordering and duplicate
	// filtering are deterministic.
	mine := resultsFor(cat, results)
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Timestamp.Before(mine[j].Timestamp) })

	tracker := dedupe.NewInMemoryTracker()
	var credits []string // winner country per credited gold, in order
	for _, r := range mine {
		if tracker.SeenAndRecord(dedupe.ResultKey(r.EventName)) {
			comp.Duplicates++
			continue
		}
		matched, ok := c.matcher.Match(r, candidates)
		if !ok {
			comp.Unmatched = append(comp.Unmatched, r)
			continue
		}
		comp.ResolvedEvents[matched.Event.ID] = true
		comp.Matched++
		for _, country := range splitWinners(r.Winner) {
			comp.Standing.GoldCounts[country]++
			credits = append(credits, country)
		}
	}

	comp.Standing.Completed = len(comp.ResolvedEvents)
	comp.Standing.Remaining = remaining(cat.EventCount, comp.Standing.Completed)
	comp.Standing.Leaders = orderedLeaders(comp.Standing.GoldCounts, credits)
	comp.Standing.NextEvent = nextEvent(candidates, comp.ResolvedEvents)
	return comp
}

// CalculateOverall derives the aggregate category's standing by summing
// the already-computed standard standings; it never tallies its own
// result list. Leaders are ordered by name since cross-category sums have
// no single timeline.
func (c *Calculator) CalculateOverall(cat model.Category, parts []Computation, events []model.ScheduledEvent) Computation {
	comp := Computation{
		Standing: model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{},
		},
		ResolvedEvents: map[string]bool{},
	}
	for _, p := range parts {
		for country, golds := range p.Standing.GoldCounts {
			comp.Standing.GoldCounts[country] += golds
		}
		comp.Standing.Completed += p.Standing.Completed
		comp.Standing.Remaining += p.Standing.Remaining
		for id := range p.ResolvedEvents {
			comp.ResolvedEvents[id] = true
		}
	}

	max := 0
	for _, golds := range comp.Standing.GoldCounts {
		if golds > max {
			max = golds
		}
	}
	if max > 0 {
		for country, golds := range comp.Standing.GoldCounts {
			if golds == max {
				comp.Standing.Leaders = append(comp.Standing.Leaders, country)
			}
		}
		sort.Strings(comp.Standing.Leaders)
	}

	var all []match.Candidate
	for _, ev := range events {
		all = append(all, match.Candidate{Category: cat, Event: ev})
	}
	comp.Standing.NextEvent = nextEvent(all, comp.ResolvedEvents)
	return comp
}

// CalculateProposition derives a proposition category's standing. The
// outcome, when decided, arrives as a completed result whose event name
// is the category id.
func (c *Calculator) CalculateProposition(cat model.Category, results []model.CompletedResult) Computation {
	comp := Computation{
		Standing: model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{},
			Remaining:  cat.EventCount,
		},
		ResolvedEvents: map[string]bool{},
	}
	for _, r := range results {
		if r.EventName != cat.ID {
			continue
		}
		comp.Standing.PropResolved = true
		comp.Standing.PropOutcome = r.Winner
		comp.Standing.Completed = cat.EventCount
		comp.Standing.Remaining = 0
		comp.ResolvedEvents[cat.ID] = true
		break
	}
	return comp
}

// Upcoming returns the unresolved events among candidates in
// chronological order, up to limit (no cap when limit <= 0).
func Upcoming(events []model.ScheduledEvent, resolved map[string]bool, limit int) []model.ScheduledEvent {
	var out []model.ScheduledEvent
	for _, ev := range events {
		if ev.Resolved || resolved[ev.ID] {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// EventsFor selects the scheduled events belonging to a category.
func EventsFor(cat model.Category, events []model.ScheduledEvent) []model.ScheduledEvent {
	if cat.Kind == model.KindAggregateOverall {
		return events
	}
	var out []model.ScheduledEvent
	for _, ev := range events {
		if ev.Sport == cat.Sport && ev.Gender == cat.Gender {
			out = append(out, ev)
		}
	}
	return out
}

// Orphaned returns the completed results no category claims at all: an
// unknown sport, a name whose gender qualifier matches no category of
// that sport, or a stray record that is not a proposition outcome. Such
// results bypass every per-category calculation, so the caller reports
// them separately.
func Orphaned(cats []model.Category, results []model.CompletedResult) []model.CompletedResult {
	type key struct{ sport, gender string }
	claimed := map[key]bool{}
	props := map[string]bool{}
	for _, cat := range cats {
		switch cat.Kind {
		case model.KindStandard:
			claimed[key{cat.Sport, strings.ToLower(cat.Gender)}] = true
		case model.KindPropositionYesNo, model.KindPropositionNumeric:
			props[cat.ID] = true
		}
	}

	var out []model.CompletedResult
	for _, r := range results {
		if props[r.EventName] {
			continue
		}
		if claimed[key{r.Sport, match.Gender(r.EventName)}] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func candidatesFor(cat model.Category, events []model.ScheduledEvent) []match.Candidate {
	var out []match.Candidate
	for _, ev := range EventsFor(cat, events) {
		out = append(out, match.Candidate{Category: cat, Event: ev})
	}
	return out
}

// resultsFor filters raw results down to this category: same sport, and
// the raw name's gender qualifier agrees with the category's gender.
func resultsFor(cat model.Category, results []model.CompletedResult) []model.CompletedResult {
	want := strings.ToLower(cat.Gender)
	var out []model.CompletedResult
	for _, r := range results {
		if r.Sport != cat.Sport {
			continue
		}
		if match.Gender(r.EventName) != want {
			continue
		}
		out = append(out, r)
	}
	return out
}

func splitWinners(winner string) []string {
	var out []string
	for _, part := range strings.Split(winner, model.SharedWinnerSeparator) {
		if c := strings.TrimSpace(part); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func remaining(total, completed int) int {
	if r := total - completed; r > 0 {
		return r
	}
	return 0
}

// orderedLeaders returns the countries holding the maximum tally, ordered
// by when each first reached it in the credit sequence.
func orderedLeaders(counts map[string]int, credits []string) []string {
	max := 0
	for _, golds := range counts {
		if golds > max {
			max = golds
		}
	}
	if max == 0 {
		return nil
	}

	running := map[string]int{}
	var leaders []string
	seen := map[string]bool{}
	for _, country := range credits {
		running[country]++
		if running[country] == max && counts[country] == max && !seen[country] {
			leaders = append(leaders, country)
			seen[country] = true
		}
	}
	return leaders
}

func nextEvent(candidates []match.Candidate, resolved map[string]bool) *model.ScheduledEvent {
	var next *model.ScheduledEvent
	for _, c := range candidates {
		if c.Event.Resolved || resolved[c.Event.ID] {
			continue
		}
		ev := c.Event
		if next == nil || ev.StartTime.Before(next.StartTime) ||
			(ev.StartTime.Equal(next.StartTime) && ev.ID < next.ID) {
			next = &ev
		}
	}
	return next
}
