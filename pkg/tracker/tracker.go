package tracker

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Resolution outcomes counted by TrackOutcome.
const (
	OutcomeRemote     = "remote"
	OutcomeStandards  = "standards"
	OutcomeUnverified = "unverified"
)

// Tracker tracks request statistics per provider and resolution outcomes
// for one run.
type Tracker struct {
	mu       sync.RWMutex
	stats    map[string]*ProviderStats
	outcomes map[string]*int64
}

// ProviderStats holds metrics for a specific provider.
// Fields are accessed atomically.
type ProviderStats struct {
	APISuccess    int64
	APIFailures   int64
	APIZeroResult int64
}

// New creates a new Tracker.
func New() *Tracker {
	t := &Tracker{
		stats:    make(map[string]*ProviderStats),
		outcomes: make(map[string]*int64),
	}
	for _, o := range []string{OutcomeRemote, OutcomeStandards, OutcomeUnverified} {
		t.outcomes[o] = new(int64)
	}
	return t
}

// getStats returns the stats object for a provider, creating it if needed.
func (t *Tracker) getStats(provider string) *ProviderStats {
	t.mu.RLock()
	s, ok := t.stats[provider]
	t.mu.RUnlock()
	if ok {
		return s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Double check
	if s, ok = t.stats[provider]; ok {
		return s
	}
	s = &ProviderStats{}
	t.stats[provider] = s
	return s
}

// TrackAPISuccess counts a request that returned data.
func (t *Tracker) TrackAPISuccess(provider string) {
	atomic.AddInt64(&t.getStats(provider).APISuccess, 1)
}

func (t *Tracker) TrackAPIFailure(provider string) {
	atomic.AddInt64(&t.getStats(provider).APIFailures, 1)
}

// TrackAPIZero counts a successful request whose result set was empty.
func (t *Tracker) TrackAPIZero(provider string) {
	atomic.AddInt64(&t.getStats(provider).APIZeroResult, 1)
}

// TrackOutcome counts how a query was finally resolved. Unknown outcomes are ignored.
func (t *Tracker) TrackOutcome(outcome string) {
	t.mu.RLock()
	c, ok := t.outcomes[outcome]
	t.mu.RUnlock()
	if ok {
		atomic.AddInt64(c, 1)
	}
}

// Snapshot returns a copy of the current provider stats.
func (t *Tracker) Snapshot() map[string]ProviderStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]ProviderStats)
	for k, v := range t.stats {
		result[k] = ProviderStats{
			APISuccess:    atomic.LoadInt64(&v.APISuccess),
			APIFailures:   atomic.LoadInt64(&v.APIFailures),
			APIZeroResult: atomic.LoadInt64(&v.APIZeroResult),
		}
	}
	return result
}

// Outcomes returns a copy of the resolution outcome counters.
func (t *Tracker) Outcomes() map[string]int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]int64, len(t.outcomes))
	for k, v := range t.outcomes {
		result[k] = atomic.LoadInt64(v)
	}
	return result
}

// LogSummary writes one INFO line per provider plus the outcome totals.
func (t *Tracker) LogSummary(logger *slog.Logger) {
	stats := t.Snapshot()
	providers := make([]string, 0, len(stats))
	for p := range stats {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	for _, p := range providers {
		s := stats[p]
		logger.Info("Provider stats",
			"provider", p,
			"success", s.APISuccess,
			"failures", s.APIFailures,
			"zero_results", s.APIZeroResult)
	}

	o := t.Outcomes()
	logger.Info("Resolution summary",
		"remote", o[OutcomeRemote],
		"standards", o[OutcomeStandards],
		"unverified", o[OutcomeUnverified])
}
