// Package stats aggregates check results over a watch session: rolling
// per-check histories, success rates, and tail latency percentiles.
package stats

import (
	"math"
	"sort"
	"time"
)

// TailLatency holds p50, p95, and max latency values.
type TailLatency struct {
	P50, P95, Max time.Duration
}

// Tail computes tail latency percentiles from samples using the
// nearest-rank method. With small sample sizes p95 naturally equals the
// maximum, which is the expected behavior. An empty slice yields zeros.
func Tail(latencies []time.Duration) TailLatency {
	if len(latencies) == 0 {
		return TailLatency{}
	}

	// Sort a copy; callers keep their sample order.
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return TailLatency{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		Max: sorted[len(sorted)-1],
	}
}

// percentile returns the value at percentile p (0 < p <= 1) from a
// pre-sorted slice, using nearest-rank: index = ceil(n*p) - 1.
func percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	index := int(math.Ceil(float64(n)*p)) - 1
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	return sorted[index]
}
