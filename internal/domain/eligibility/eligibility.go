// Package eligibility decides whether a prediction can still win its
// category against the current standing.
package eligibility

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// Sentinel error kinds. ErrEmptyLeaderSet marks a broken standing, not an
// input problem: the calculator guarantees a non-empty leader set once an
// event has resolved, so hitting it means a logic fault upstream.
var (
	ErrEmptyLeaderSet = errors.New("empty leader set after resolved events")
	ErrMalformedPick  = errors.New("malformed proposition pick")
	ErrUnknownKind    = errors.New("unknown category kind")
)

// Evaluate classifies the prediction's viability. The arithmetic is the
// conservative best case for the pick: it catches up iff its tally plus
// every remaining gold reaches the leaders' current tally, since a tie at
// the top counts as a win.
func Evaluate(standing model.CategoryStanding, pred model.Prediction, cat model.Category) (model.Status, error) {
	switch cat.Kind {
	case model.KindStandard, model.KindAggregateOverall:
		return evaluateCountry(standing, pred.Pick)
	case model.KindPropositionYesNo:
		return evaluateYesNo(standing, pred.Pick)
	case model.KindPropositionNumeric:
		return evaluateNumeric(standing, pred.Pick)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, cat.Kind)
	}
}

func evaluateCountry(standing model.CategoryStanding, pick string) (model.Status, error) {
	if standing.Completed > 0 && len(standing.Leaders) == 0 {
		return "", fmt.Errorf("%w: category %s", ErrEmptyLeaderSet, standing.CategoryID)
	}

	for _, leader := range standing.Leaders {
		if leader != pick {
			continue
		}
		if len(standing.Leaders) == 1 {
			return model.StatusLeading, nil
		}
		return model.StatusTied, nil
	}

	leaderCount := standing.LeaderCount()
	picked := standing.GoldCounts[pick]
	if standing.Remaining == 0 {
		// Terminal: the pick is not in the leader set, so it lost.
		return model.StatusEliminated, nil
	}
	if picked+standing.Remaining >= leaderCount {
		return model.StatusBehindPossible, nil
	}
	return model.StatusEliminated, nil
}

func evaluateYesNo(standing model.CategoryStanding, pick string) (model.Status, error) {
	p := strings.ToLower(strings.TrimSpace(pick))
	if p != "yes" && p != "no" {
		return "", fmt.Errorf("%w: want yes or no, got %q", ErrMalformedPick, pick)
	}
	if !standing.PropResolved {
		return model.StatusPropositionPending, nil
	}
	if strings.EqualFold(strings.TrimSpace(standing.PropOutcome), p) {
		return model.StatusLeading, nil
	}
	return model.StatusEliminated, nil
}

func evaluateNumeric(standing model.CategoryStanding, pick string) (model.Status, error) {
	picked, err := strconv.ParseFloat(strings.TrimSpace(pick), 64)
	if err != nil {
		return "", fmt.Errorf("%w: want a number, got %q", ErrMalformedPick, pick)
	}
	if !standing.PropResolved {
		return model.StatusPropositionPending, nil
	}
	actual, err := strconv.ParseFloat(strings.TrimSpace(standing.PropOutcome), 64)
	if err != nil {
		return "", fmt.Errorf("%w: unparseable outcome %q", ErrMalformedPick, standing.PropOutcome)
	}
	if picked == actual {
		return model.StatusLeading, nil
	}
	return model.StatusEliminated, nil
}
