// Package match resolves loosely formatted result names to canonical
// scheduled events. It is stateless and shared by the scrape-ingestion
// side and the rooting engine.
package match

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/okian/podium/internal/domain/model"
)

// Score ladder and acceptance threshold. An exact normalized match scores
// 1.0, containment 0.9, event-type keyword agreement 0.8, and the edit
// distance fallback scales the keyword similarity by the keyword weight.
// The default threshold 0.64 therefore admits fuzzy candidates whose
// keyword similarity is at least 0.8; chosen empirically against scraped
// feeds, which misspell but rarely rename.
const (
	scoreExact       = 1.0
	scoreContainment = 0.9
	scoreKeyword     = 0.8
	minKeywordLen    = 4

	// DefaultThreshold is the minimum score a candidate must clear.
	DefaultThreshold = 0.64
)

// Candidate pairs a scheduled event with the category it belongs to.
type Candidate struct {
	Category model.Category
	Event    model.ScheduledEvent
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithThreshold sets the minimum acceptance score.
func WithThreshold(t float64) Option {
	return func(m *Matcher) {
		if t > 0 && t <= 1 {
			m.threshold = t
		}
	}
}

// Matcher scores raw result names against candidate events.
type Matcher struct {
	threshold float64
}

// New creates a Matcher with configuration options.
func New(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the best candidate for a raw completed result, or false
// when no candidate clears the threshold. Ties on score break toward the
// candidate whose scheduled date is nearest the raw record's timestamp,
// then by event id for determinism. Cost is linear in the candidate set,
// which is small enough per request that no index is warranted.
func (m *Matcher) Match(raw model.CompletedResult, candidates []Candidate) (Candidate, bool) {
	var (
		best      Candidate
		bestScore float64
		found     bool
	)
	for _, c := range candidates {
		s := m.Score(raw.EventName, c.Event.Name)
		if s < m.threshold {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
			continue
		}
		if s == bestScore && breaksTie(raw.Timestamp, c, best) {
			best = c
		}
	}
	return best, found
}

// breaksTie prefers the candidate whose scheduled date is closest to the
// raw record's timestamp, then the lower event id.
func breaksTie(ref time.Time, c, cur Candidate) bool {
	dc := absDuration(c.Event.StartTime.Sub(ref))
	dcur := absDuration(cur.Event.StartTime.Sub(ref))
	if dc != dcur {
		return dc < dcur
	}
	return c.Event.ID < cur.Event.ID
}

// Score computes the similarity of a raw result name and a canonical event
// name in [0,1]. Names with disagreeing gender qualifiers never match.
func (m *Matcher) Score(rawName, eventName string) float64 {
	if Gender(rawName) != Gender(eventName) {
		return 0
	}

	rawNorm := Normalize(rawName)
	eventNorm := Normalize(eventName)
	if rawNorm == eventNorm {
		return scoreExact
	}
	if rawNorm != "" && eventNorm != "" &&
		(strings.Contains(rawNorm, eventNorm) || strings.Contains(eventNorm, rawNorm)) {
		return scoreContainment
	}

	// Fall back to the event-type keyword: the normalized name with
	// digits stripped, so "10km sprint" and "sprint" still agree.
	rawKW := typeKeyword(rawNorm)
	eventKW := typeKeyword(eventNorm)
	if len(rawKW) < minKeywordLen || len(eventKW) < minKeywordLen {
		return 0
	}
	if rawKW == eventKW || strings.Contains(rawKW, eventKW) || strings.Contains(eventKW, rawKW) {
		return scoreKeyword
	}

	dist := levenshtein.ComputeDistance(rawKW, eventKW)
	maxLen := math.Max(float64(len(rawKW)), float64(len(eventKW)))
	sim := 1 - float64(dist)/maxLen
	if sim <= 0 {
		return 0
	}
	return scoreKeyword * sim
}

var (
	genderPrefixRe = regexp.MustCompile(`^(men'?s?|women'?s?|mixed)\s*`)
	nonAlnumRe     = regexp.MustCompile(`[^a-z0-9]`)
	digitsRe       = regexp.MustCompile(`[0-9]`)
	normalHillRe   = regexp.MustCompile(`\bnh\b`)
	largeHillRe    = regexp.MustCompile(`\blh\b`)
)

// Normalize canonicalizes an event name for comparison: case-folded,
// gender qualifier dropped, unit and hill abbreviations unified, all
// punctuation and whitespace removed.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = genderPrefixRe.ReplaceAllString(n, "")
	n = strings.ReplaceAll(n, "kilometres", "km")
	n = strings.ReplaceAll(n, "kilometre", "km")
	n = strings.ReplaceAll(n, "metres", "m")
	n = strings.ReplaceAll(n, "metre", "m")
	n = normalHillRe.ReplaceAllString(n, "normal hill")
	n = largeHillRe.ReplaceAllString(n, "large hill")
	return nonAlnumRe.ReplaceAllString(n, "")
}

// Gender extracts the gender qualifier from an event name, empty when
// the name carries none.
func Gender(name string) string {
	low := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(low, "women"):
		return "women"
	case strings.HasPrefix(low, "men"):
		return "men"
	case strings.HasPrefix(low, "mixed"):
		return "mixed"
	}
	return ""
}

func typeKeyword(normalized string) string {
	return digitsRe.ReplaceAllString(normalized, "")
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
