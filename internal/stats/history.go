package stats

import (
	"time"

	"github.com/smoreland/linewatch/internal/runner"
)

type sample struct {
	latency time.Duration
	ok      bool
}

// History keeps the most recent results for each check, bounded per
// check by a fixed limit. Checks appear in summaries in the order they
// were first recorded.
type History struct {
	limit   int
	order   []string
	byCheck map[string][]sample
}

// NewHistory returns a History that retains at most limit results per
// check. A limit <= 0 keeps a single result.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{
		limit:   limit,
		byCheck: make(map[string][]sample),
	}
}

// Record appends one refresh cycle's results.
func (h *History) Record(results []runner.Result) {
	for _, r := range results {
		if _, seen := h.byCheck[r.Name]; !seen {
			h.order = append(h.order, r.Name)
		}
		samples := append(h.byCheck[r.Name], sample{latency: r.Latency, ok: r.OK()})
		if len(samples) > h.limit {
			samples = samples[len(samples)-h.limit:]
		}
		h.byCheck[r.Name] = samples
	}
}

// CheckSummary aggregates one check's recorded results.
type CheckSummary struct {
	Name        string
	Samples     int
	Successes   int
	SuccessRate float64
	Latency     TailLatency
}

// Summaries returns per-check aggregates in first-recorded order.
// Latency percentiles only include successful runs; a check that never
// succeeded reports zero latencies.
func (h *History) Summaries() []CheckSummary {
	summaries := make([]CheckSummary, 0, len(h.order))
	for _, name := range h.order {
		samples := h.byCheck[name]

		s := CheckSummary{Name: name, Samples: len(samples)}
		latencies := make([]time.Duration, 0, len(samples))
		for _, smp := range samples {
			if smp.ok {
				s.Successes++
				latencies = append(latencies, smp.latency)
			}
		}
		if s.Samples > 0 {
			s.SuccessRate = float64(s.Successes) / float64(s.Samples)
		}
		s.Latency = Tail(latencies)
		summaries = append(summaries, s)
	}
	return summaries
}
