// Package dedupe tracks already-seen completed results so a feed that
// repeats an event contributes exactly one tally.
package dedupe

import (
	"sync"

	"github.com/okian/podium/internal/domain/match"
)

// Tracker records result keys to filter duplicate scraped records.
type Tracker interface {
	// SeenAndRecord atomically checks whether key was seen and records it
	// if not. Returns true if key was already seen.
	SeenAndRecord(key string) bool

	Size() int
}

// Option applies a configuration option to the in-memory tracker.
type Option func(*inMemoryTracker)

// WithMaxSize bounds the number of keys kept. Zero or negative means
// unbounded; recording beyond the bound silently drops the oldest keys'
// guarantee, so callers sizing per request should leave it unbounded.
func WithMaxSize(maxSize int) Option {
	return func(t *inMemoryTracker) {
		t.maxSize = maxSize
	}
}

// inMemoryTracker implements Tracker with a mutex-guarded set.
type inMemoryTracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewInMemoryTracker creates a tracker with configuration options.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{seen: make(map[string]struct{})}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *inMemoryTracker) SeenAndRecord(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[key]; ok {
		return true
	}
	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.seen, oldest)
	}
	t.seen[key] = struct{}{}
	if t.maxSize > 0 {
		t.order = append(t.order, key)
	}
	return false
}

func (t *inMemoryTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// ResultKey derives the duplicate-detection key for a raw result name:
// the gender qualifier plus the normalized name, so reformatted repeats
// of the same event collapse to one key.
func ResultKey(rawName string) string {
	return match.Gender(rawName) + "|" + match.Normalize(rawName)
}
