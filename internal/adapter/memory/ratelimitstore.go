package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gitlab.com/clawgames.net/internal/core/ports/secondary"
	"gitlab.com/clawgames.net/internal/domain"
)

var _ secondary.RateLimitStore = &RateLimitStore{}

// RateLimitStore keeps the last admitted submission per source in process
// memory. Once the table grows past compactThreshold entries, an admitting
// call drops every entry older than compactAge.
type RateLimitStore struct {
	mu               sync.Mutex
	entries          map[string]time.Time
	compactThreshold int
	compactAge       time.Duration
}

func NewRateLimitStore(compactThreshold int, compactAge time.Duration) *RateLimitStore {
	return &RateLimitStore{
		entries:          make(map[string]time.Time),
		compactThreshold: compactThreshold,
		compactAge:       compactAge,
	}
}

func (s *RateLimitStore) Admit(_ context.Context, key string, now time.Time, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.entries[key]; ok && now.Sub(last) < window {
		return false, nil
	}
	s.entries[key] = now

	if len(s.entries) > s.compactThreshold {
		for k, t := range s.entries {
			if now.Sub(t) > s.compactAge {
				delete(s.entries, k)
			}
		}
	}
	return true, nil
}

// Entries returns a snapshot ordered by source key
func (s *RateLimitStore) Entries() []domain.RateLimitEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RateLimitEntry, 0, len(s.entries))
	for k, t := range s.entries {
		out = append(out, domain.RateLimitEntry{SourceKey: k, LastSubmissionTime: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceKey < out[j].SourceKey })
	return out
}
