// Package narrate turns an eligibility status plus standing data into
// human-readable descriptions of what must happen. Output is plain text;
// presentation formatting belongs to the caller.
package narrate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/podium/internal/domain/model"
)

// Scenarios maps (status, standing, prediction) to templated lines.
func Scenarios(status model.Status, standing model.CategoryStanding, pred model.Prediction, cat model.Category) []string {
	switch cat.Kind {
	case model.KindPropositionYesNo:
		return yesNoScenarios(status, standing, pred.Pick)
	case model.KindPropositionNumeric:
		return numericScenarios(status, standing, pred.Pick)
	default:
		return countryScenarios(status, standing, pred.Pick)
	}
}

func yesNoScenarios(status model.Status, standing model.CategoryStanding, pick string) []string {
	if status == model.StatusPropositionPending {
		if strings.EqualFold(strings.TrimSpace(pick), "yes") {
			return []string{"Rooting for this to happen."}
		}
		return []string{"Rooting for this not to happen."}
	}
	if status == model.StatusLeading {
		return []string{fmt.Sprintf("Called it: the outcome was %s.", strings.ToLower(standing.PropOutcome))}
	}
	return []string{fmt.Sprintf("Missed: the outcome was %s.", strings.ToLower(standing.PropOutcome))}
}

func numericScenarios(status model.Status, standing model.CategoryStanding, pick string) []string {
	if status == model.StatusPropositionPending {
		return []string{fmt.Sprintf("Rooting for the final number to land on exactly %s.", pick)}
	}
	if status == model.StatusLeading {
		return []string{fmt.Sprintf("Exactly right: the final number was %s.", standing.PropOutcome)}
	}
	return []string{fmt.Sprintf("Missed: the final number was %s, not %s.", standing.PropOutcome, pick)}
}

func countryScenarios(status model.Status, standing model.CategoryStanding, pick string) []string {
	if len(standing.GoldCounts) == 0 {
		return []string{fmt.Sprintf("Rooting for %s to win gold medals.", pick)}
	}

	switch status {
	case model.StatusLeading:
		return leadingScenarios(standing, pick)
	case model.StatusTied:
		return tiedScenarios(standing, pick)
	case model.StatusBehindPossible:
		return behindScenarios(standing, pick)
	default:
		return eliminatedScenarios(standing, pick)
	}
}

func leadingScenarios(standing model.CategoryStanding, pick string) []string {
	picked := standing.GoldCounts[pick]

	// Runner-up tally and names, excluding the pick. GoldCounts only holds
	// countries that have been credited a gold, so every tally is >= 1 and
	// runnersUp stays empty until a second country scores.
	second := 0
	var runnersUp []string
	for country, golds := range standing.GoldCounts {
		if country == pick {
			continue
		}
		switch {
		case golds > second:
			second = golds
			runnersUp = []string{country}
		case golds == second:
			runnersUp = append(runnersUp, country)
		}
	}
	sort.Strings(runnersUp)

	lead := picked - second

	if standing.Remaining == 0 {
		return []string{fmt.Sprintf("Leading by %d with all events complete: waiting for the official result.", lead)}
	}

	// A tie at the top counts as a win, so the category is clinched once
	// the runner-up's best case cannot pass the pick.
	if picked >= second+standing.Remaining {
		return []string{fmt.Sprintf("Clinched: nobody can catch %s in this category.", pick)}
	}

	// Magic number: golds needed to at least tie the runner-up's best case.
	magic := second + standing.Remaining - picked

	if len(runnersUp) == 0 {
		return []string{fmt.Sprintf("Leading: only country with golds so far. Win %s to clinch.", golds(magic))}
	}
	return []string{fmt.Sprintf("Leading by %d over %s. Win %s to clinch.", lead, joinRunnersUp(runnersUp), golds(magic))}
}

func tiedScenarios(standing model.CategoryStanding, pick string) []string {
	var others []string
	for _, leader := range standing.Leaders {
		if leader != pick {
			others = append(others, leader)
		}
	}
	co := strings.Join(others, ", ")
	if standing.Remaining == 0 {
		return []string{fmt.Sprintf("Tied for the lead with %s: a shared win.", co)}
	}
	return []string{fmt.Sprintf("Tied for the lead with %s: pull ahead or hold the tie.", co)}
}

func behindScenarios(standing model.CategoryStanding, pick string) []string {
	gap := standing.LeaderCount() - standing.GoldCounts[pick]
	leader := standing.Leaders[0]
	if len(standing.Leaders) > 1 {
		leader = fmt.Sprintf("%s (tied with %s)", leader, strings.Join(standing.Leaders[1:], ", "))
	}

	out := []string{fmt.Sprintf("%s needs %s than %s.", pick, golds(gap), leader)}
	if standing.Remaining <= gap {
		out = append(out, fmt.Sprintf("Only %d events left: near-perfect results needed.", standing.Remaining))
	}
	return out
}

func eliminatedScenarios(standing model.CategoryStanding, pick string) []string {
	gap := standing.LeaderCount() - standing.GoldCounts[pick]
	return []string{fmt.Sprintf(
		"Mathematically eliminated: %s leads by %d with %d events left.",
		strings.Join(standing.Leaders, ", "), gap, standing.Remaining,
	)}
}

func joinRunnersUp(countries []string) string {
	switch len(countries) {
	case 1:
		return countries[0]
	case 2:
		return fmt.Sprintf("%s and %s (tied)", countries[0], countries[1])
	default:
		return strings.Join(countries[:len(countries)-1], ", ") + fmt.Sprintf(", and %s (tied)", countries[len(countries)-1])
	}
}

func golds(n int) string {
	if n == 1 {
		return "1 more gold"
	}
	return fmt.Sprintf("%d more golds", n)
}

