// Package results defines the boundary to the scrape/result collaborators.
// The engine consumes fully materialized snapshots; fetching over the
// network, retries and timeouts live on the other side of Source.
package results

import (
	"context"
	"sync"

	"github.com/okian/podium/internal/domain/model"
)

// Source supplies per-request snapshots of result data.
type Source interface {
	// Completed returns the raw scraped completed-event records. The
	// engine tolerates duplicates and unmatchable names in the slice.
	Completed(ctx context.Context) ([]model.CompletedResult, error)

	// Official returns officially entered category results, keyed by
	// category id, used for pool scoring.
	Official(ctx context.Context) (map[string]string, error)
}

// StaticSource is a Source over fixed snapshots, used by tests, the
// simulation CLI, and deployments that refresh data out of band.
type StaticSource struct {
	mu        sync.RWMutex
	completed []model.CompletedResult
	official  map[string]string
}

// NewStaticSource creates a StaticSource from snapshots.
func NewStaticSource(completed []model.CompletedResult, official map[string]string) *StaticSource {
	return &StaticSource{
		completed: append([]model.CompletedResult(nil), completed...),
		official:  copyOfficial(official),
	}
}

func (s *StaticSource) Completed(ctx context.Context) ([]model.CompletedResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CompletedResult(nil), s.completed...), nil
}

func (s *StaticSource) Official(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOfficial(s.official), nil
}

// Replace swaps both snapshots atomically.
func (s *StaticSource) Replace(completed []model.CompletedResult, official map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append([]model.CompletedResult(nil), completed...)
	s.official = copyOfficial(official)
}

func copyOfficial(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
