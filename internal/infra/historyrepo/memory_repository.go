package historyrepo

import (
	"context"
	"strings"
	"sync"

	"github.com/weathermate/weather-mate/internal/domain/history"
)

// MemoryRepository keeps history in process memory for tests and dev runs.
type MemoryRepository struct {
	mu           sync.RWMutex
	observations map[string][]history.Observation
	recent       []string
	favorites    []string
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{observations: make(map[string][]history.Observation)}
}

// SaveObservation appends the reading and drops the oldest beyond keep.
func (r *MemoryRepository) SaveObservation(_ context.Context, obs history.Observation, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := cityKey(obs.City)
	records := append(r.observations[key], obs)
	if keep > 0 && len(records) > keep {
		records = records[len(records)-keep:]
	}
	r.observations[key] = records
	return nil
}

// Observations returns up to limit readings, oldest first.
func (r *MemoryRepository) Observations(_ context.Context, city string, limit int) ([]history.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := r.observations[cityKey(city)]
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	out := make([]history.Observation, len(records))
	copy(out, records)
	return out, nil
}

// AddRecentSearch inserts the city at the front, moving it up if present.
func (r *MemoryRepository) AddRecentSearch(_ context.Context, city string, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	recent := make([]string, 0, len(r.recent)+1)
	recent = append(recent, city)
	for _, existing := range r.recent {
		if strings.EqualFold(existing, city) {
			continue
		}
		recent = append(recent, existing)
	}
	if keep > 0 && len(recent) > keep {
		recent = recent[:keep]
	}
	r.recent = recent
	return nil
}

// RecentSearches returns the most recent cities first.
func (r *MemoryRepository) RecentSearches(_ context.Context, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recent := r.recent
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	out := make([]string, len(recent))
	copy(out, recent)
	return out, nil
}

// AddFavorite appends the city unless it is already pinned.
func (r *MemoryRepository) AddFavorite(_ context.Context, city string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, favorite := range r.favorites {
		if strings.EqualFold(favorite, city) {
			return nil
		}
	}
	r.favorites = append(r.favorites, city)
	return nil
}

// RemoveFavorite drops the city if present.
func (r *MemoryRepository) RemoveFavorite(_ context.Context, city string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.favorites[:0]
	for _, favorite := range r.favorites {
		if !strings.EqualFold(favorite, city) {
			kept = append(kept, favorite)
		}
	}
	r.favorites = kept
	return nil
}

// Favorites lists pinned cities in insertion order.
func (r *MemoryRepository) Favorites(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.favorites))
	copy(out, r.favorites)
	return out, nil
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

var _ history.Repository = (*MemoryRepository)(nil)
