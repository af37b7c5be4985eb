// Package scoring ranks prediction sets against official category results.
package scoring

import (
	"sort"
	"strings"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

// Score counts correct picks per prediction set and returns the pool
// table sorted by correct picks descending, then owner name ascending.
// Sets with equal correct counts share a rank.
func Score(sets []model.PredictionSet, official map[string]string) []types.ScoreEntry {
	entries := make([]types.ScoreEntry, 0, len(sets))
	for _, set := range sets {
		correct := 0
		for _, pred := range set.Predictions {
			result, ok := official[pred.CategoryID]
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(pred.Pick), strings.TrimSpace(result)) {
				correct++
			}
		}
		entries = append(entries, types.ScoreEntry{
			Participant: set.Owner,
			Correct:     correct,
			Predicted:   len(set.Predictions),
			Resolved:    len(official),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Correct != entries[j].Correct {
			return entries[i].Correct > entries[j].Correct
		}
		return entries[i].Participant < entries[j].Participant
	})

	for i := range entries {
		if i > 0 && entries[i].Correct == entries[i-1].Correct {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}
