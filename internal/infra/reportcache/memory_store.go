package reportcache

import (
	"context"
	"sync"
	"time"

	"github.com/weathermate/weather-mate/internal/domain/weather"
)

type cachedReport struct {
	payload   weather.Report
	expiresAt time.Time
}

// MemoryStore is an in-memory report cache for tests and single-instance
// deployments without Valkey.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]cachedReport
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]cachedReport)}
}

// GetReport implements weather.ReportStore.
func (s *MemoryStore) GetReport(_ context.Context, key string) (weather.Report, bool, error) {
	if key == "" {
		return weather.Report{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.reports[key]
	s.mu.RUnlock()
	if !ok {
		return weather.Report{}, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.reports, key)
		s.mu.Unlock()
		return weather.Report{}, false, nil
	}
	return record.payload, true, nil
}

// SaveReport caches the report with optional TTL.
func (s *MemoryStore) SaveReport(_ context.Context, key string, report weather.Report, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.reports[key] = cachedReport{payload: report, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ weather.ReportStore = (*MemoryStore)(nil)
