// Package catalog serves category and schedule reference data. The store
// is read-mostly and in-memory; durable storage stays an external
// collaborator behind the Store interface.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Overall category constants.
const (
	OverallID          = "overall"
	OverallDisplayName = "Most Gold Medals Overall"
)

// Store provides read access to reference data.
type Store interface {
	// Categories returns all categories in catalog order.
	Categories(ctx context.Context) []model.Category

	// CategoryByID returns one category. Returns ErrNotFound when the id
	// is unknown.
	CategoryByID(ctx context.Context, id string) (model.Category, error)

	// Events returns every scheduled gold-medal event.
	Events(ctx context.Context) []model.ScheduledEvent
}

// memoryStore implements Store over immutable snapshots.
type memoryStore struct {
	mu         sync.RWMutex
	categories []model.Category
	byID       map[string]model.Category
	events     []model.ScheduledEvent
}

// Option applies a configuration option to the memory store.
type Option func(*memoryStore)

// WithPropositions appends proposition categories to the derived list.
func WithPropositions(cats ...model.Category) Option {
	return func(s *memoryStore) {
		s.categories = append(s.categories, cats...)
	}
}

// NewMemoryStore derives the category list from the scheduled events and
// returns a Store over it. Standard categories are one per sport+gender
// grouping; the aggregate overall category is appended last.
func NewMemoryStore(events []model.ScheduledEvent, opts ...Option) Store {
	s := &memoryStore{
		categories: DeriveCategories(events),
		events:     append([]model.ScheduledEvent(nil), events...),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.byID = make(map[string]model.Category, len(s.categories))
	for _, cat := range s.categories {
		s.byID[cat.ID] = cat
	}
	return s
}

func (s *memoryStore) Categories(ctx context.Context) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

func (s *memoryStore) CategoryByID(ctx context.Context, id string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.byID[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cat, nil
}

func (s *memoryStore) Events(ctx context.Context) []model.ScheduledEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ScheduledEvent(nil), s.events...)
}

// DeriveCategories groups a flat event list by sport+gender into standard
// categories and appends the aggregate overall category covering them all.
func DeriveCategories(events []model.ScheduledEvent) []model.Category {
	type key struct{ sport, gender string }
	groups := map[key][]model.ScheduledEvent{}
	for _, ev := range events {
		k := key{ev.Sport, ev.Gender}
		groups[k] = append(groups[k], ev)
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sport != keys[j].sport {
			return keys[i].sport < keys[j].sport
		}
		return keys[i].gender < keys[j].gender
	})

	var categories []model.Category
	for _, k := range keys {
		group := groups[k]
		first, last := dateRange(group)
		categories = append(categories, model.Category{
			ID:          CategoryID(k.sport, k.gender),
			Sport:       k.sport,
			Gender:      k.gender,
			DisplayName: displayName(k.sport, k.gender),
			Kind:        model.KindStandard,
			EventCount:  len(group),
			FirstEvent:  first,
			LastEvent:   last,
		})
	}

	if len(events) > 0 {
		first, last := dateRange(events)
		categories = append(categories, model.Category{
			ID:          OverallID,
			Sport:       "Overall",
			DisplayName: OverallDisplayName,
			Kind:        model.KindAggregateOverall,
			EventCount:  len(events),
			FirstEvent:  first,
			LastEvent:   last,
		})
	}
	return categories
}

// CategoryID derives the canonical identifier for a sport+gender pair,
// e.g. ("Alpine Skiing", "Men") -> "alpine_skiing_men".
func CategoryID(sport, gender string) string {
	slug := strings.ToLower(sport)
	slug = strings.ReplaceAll(slug, " ", "_")
	slug = strings.ReplaceAll(slug, "-", "_")
	return slug + "_" + strings.ToLower(gender)
}

func displayName(sport, gender string) string {
	if gender == "Mixed" {
		return "Mixed " + sport
	}
	return gender + "'s " + sport
}

func dateRange(events []model.ScheduledEvent) (first, last time.Time) {
	for _, ev := range events {
		if first.IsZero() || ev.StartTime.Before(first) {
			first = ev.StartTime
		}
		if ev.StartTime.After(last) {
			last = ev.StartTime
		}
	}
	return first, last
}
