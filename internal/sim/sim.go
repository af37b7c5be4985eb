// Package sim produces deterministic mid-tournament snapshots for tests
// and the simulate CLI: a schedule, partially completed results with the
// kind of noise real scrapes carry, official results for the finished
// categories, and a handful of prediction sets.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/adapters/catalog"
	"github.com/okian/podium/internal/domain/model"
)

const defaultSeed = 42

// Snapshot bundles everything the engine consumes for one simulated moment.
type Snapshot struct {
	Now          time.Time
	Events       []model.ScheduledEvent
	Propositions []model.Category
	Completed    []model.CompletedResult
	Official     map[string]string
	Sets         []model.PredictionSet
}

// Option applies a configuration option to the generator.
type Option func(*generator)

// WithSeed makes prediction assignment reproducible across runs.
func WithSeed(seed int64) Option {
	return func(g *generator) {
		g.seed = seed
	}
}

// WithNow overrides the simulated evaluation time.
func WithNow(now time.Time) Option {
	return func(g *generator) {
		if !now.IsZero() {
			g.now = now
		}
	}
}

type generator struct {
	seed int64
	now  time.Time
}

// scheduleEntry describes one scheduled event relative to the simulated
// clock: day offsets keep the snapshot meaningful whatever now is.
type scheduleEntry struct {
	sport  string
	name   string
	gender string
	day    int // offset in days from the simulated now, negative = past
	winner string
}

// A compressed Winter Games midway through: three sports finished or in
// progress, two yet to start. Winners are only set for past events.
var schedule = []scheduleEntry{
	{"Alpine Skiing", "Men's Downhill", "Men", -5, "Switzerland"},
	{"Alpine Skiing", "Men's Super-G", "Men", -3, "Switzerland"},
	{"Alpine Skiing", "Men's Giant Slalom", "Men", -1, "Switzerland"},
	{"Alpine Skiing", "Men's Slalom", "Men", 2, ""},
	{"Alpine Skiing", "Men's Combined", "Men", 4, ""},
	{"Alpine Skiing", "Women's Downhill", "Women", -4, "Italy"},
	{"Alpine Skiing", "Women's Slalom", "Women", 1, ""},
	{"Biathlon", "Men's 10km Sprint", "Men", -4, "Norway"},
	{"Biathlon", "Men's 20km Individual", "Men", -2, "France"},
	{"Biathlon", "Men's 12.5km Pursuit", "Men", 0, ""},
	{"Biathlon", "Men's Mass Start 15km", "Men", 9, ""},
	{"Luge", "Men's Singles", "Men", -6, "Germany"},
	{"Luge", "Men's Doubles", "Men", -5, "Germany"},
	{"Ski Jumping", "Men's Individual NH", "Men", -5, "Norway"},
	{"Ski Jumping", "Men's Individual LH", "Men", -4, "Norway / Austria"},
	{"Speed Skating", "Women's 1000m", "Women", 3, ""},
	{"Speed Skating", "Women's 1500m", "Women", 6, ""},
}

// Scrape noise applied to completed-result names, keyed by scheduled
// name: the feed abbreviates, drops apostrophes, and misspells.
var scrapedNames = map[string]string{
	"Men's Downhill":        "Mens Downhil",
	"Men's 10km Sprint":     "Men's 10 km Sprint",
	"Men's Individual NH":   "Men's Individual Normal Hill",
	"Men's Individual LH":   "Men's Individual Large Hill",
	"Men's 20km Individual": "Men's 20 km Individual",
}

// One proposition still open at the simulated now, one already decided.
var propositions = []model.Category{
	{
		ID:          "usa_medal_record",
		DisplayName: "USA breaks their Winter Games medal record",
		Kind:        model.KindPropositionYesNo,
		EventCount:  1,
	},
	{
		ID:          "host_nation_gold",
		DisplayName: "Host nation wins at least one gold",
		Kind:        model.KindPropositionYesNo,
		EventCount:  1,
	},
}

var participants = []string{"Alice", "Bob", "Carol", "Dave"}

var pickPool = []string{
	"Norway", "Germany", "Switzerland", "Austria", "Italy",
	"France", "United States", "Canada", "Sweden", "Netherlands",
}

// NewSnapshot generates a deterministic snapshot.
func NewSnapshot(opts ...Option) Snapshot {
	g := &generator{
		seed: defaultSeed,
		now:  time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(g)
	}
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic seed for reproducible snapshots

	snap := Snapshot{
		Now:      g.now,
		Official: map[string]string{},
	}

	for i, entry := range schedule {
		start := g.now.AddDate(0, 0, entry.day)
		ev := model.ScheduledEvent{
			ID:        fmt.Sprintf("ev-%02d", i+1),
			Sport:     entry.sport,
			Name:      entry.name,
			Gender:    entry.gender,
			StartTime: start,
		}
		snap.Events = append(snap.Events, ev)

		if entry.winner == "" {
			continue
		}
		name := entry.name
		if scraped, ok := scrapedNames[entry.name]; ok {
			name = scraped
		}
		snap.Completed = append(snap.Completed, model.CompletedResult{
			Sport:     entry.sport,
			EventName: name,
			Winner:    entry.winner,
			Timestamp: start,
		})
	}

	// The feed repeats the luge singles result under its canonical name.
	snap.Completed = append(snap.Completed, model.CompletedResult{
		Sport:     "Luge",
		EventName: "Men's Singles",
		Winner:    "Germany",
		Timestamp: g.now.AddDate(0, 0, -6),
	})

	// And it carries one record no scheduled event corresponds to.
	snap.Completed = append(snap.Completed, model.CompletedResult{
		Sport:     "Biathlon",
		EventName: "Men's Team Exhibition Relay",
		Winner:    "Norway",
		Timestamp: g.now.AddDate(0, 0, -2),
	})

	// Luge finished and its result was entered officially.
	snap.Official[catalog.CategoryID("Luge", "Men")] = "Germany"

	// The decided proposition's outcome arrives keyed by its category id.
	snap.Propositions = append([]model.Category(nil), propositions...)
	snap.Completed = append(snap.Completed, model.CompletedResult{
		EventName: "host_nation_gold",
		Winner:    "Yes",
		Timestamp: g.now.AddDate(0, 0, -1),
	})

	cats := append(catalog.DeriveCategories(snap.Events), snap.Propositions...)
	for _, owner := range participants {
		set := model.PredictionSet{
			ID:    uuid.NewString(),
			Owner: owner,
		}
		for _, cat := range cats {
			set.Predictions = append(set.Predictions, model.Prediction{
				CategoryID: cat.ID,
				Pick:       pick(rng, cat),
			})
		}
		snap.Sets = append(snap.Sets, set)
	}

	return snap
}

func pick(rng *rand.Rand, cat model.Category) string {
	switch cat.Kind {
	case model.KindPropositionYesNo:
		if rng.Intn(2) == 0 {
			return "yes"
		}
		return "no"
	case model.KindPropositionNumeric:
		return fmt.Sprintf("%d", rng.Intn(10))
	default:
		return pickPool[rng.Intn(len(pickPool))]
	}
}
