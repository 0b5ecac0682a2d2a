package metrics

import "sync"

// UpstreamUsage counts calls made against the upstream weather provider.
// The free OpenWeatherMap tier is rate limited, so operators want to see
// how much of the budget each process burns.
type UpstreamUsage struct {
	mu        sync.Mutex
	requests  int64
	failures  int64
	cacheHits int64
}

// UsageSnapshot is the serializable view of the counters.
type UsageSnapshot struct {
	Requests  int64 `json:"requests"`
	Failures  int64 `json:"failures"`
	CacheHits int64 `json:"cacheHits"`
}

// NewUpstreamUsage constructs a zeroed counter set.
func NewUpstreamUsage() *UpstreamUsage {
	return &UpstreamUsage{}
}

// RecordRequest counts one upstream call, failed or not.
func (u *UpstreamUsage) RecordRequest(failed bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requests++
	if failed {
		u.failures++
	}
}

// RecordCacheHit counts a request served without touching the upstream API.
func (u *UpstreamUsage) RecordCacheHit() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cacheHits++
}

// Snapshot returns a copy of the current counters.
func (u *UpstreamUsage) Snapshot() UsageSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UsageSnapshot{Requests: u.requests, Failures: u.failures, CacheHits: u.cacheHits}
}

// IsZero reports whether any activity has been recorded.
func (s UsageSnapshot) IsZero() bool {
	return s.Requests == 0 && s.Failures == 0 && s.CacheHits == 0
}
