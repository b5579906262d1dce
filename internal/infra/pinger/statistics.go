package pinger

import (
	"slices"
	"sync"
	"time"
)

// latencyWindowSize is the number of recent successful ping latencies kept per pinger.
const latencyWindowSize = 64

// latencyWindow is a fixed size ring of recent latencies.
type latencyWindow struct {
	values []time.Duration
	next   int
}

func (w *latencyWindow) add(d time.Duration) {
	if len(w.values) < latencyWindowSize {
		w.values = append(w.values, d)

		return
	}

	w.values[w.next] = d
	w.next = (w.next + 1) % latencyWindowSize
}

// percentile returns the nearest-rank percentile p in [0, 100].
func (w *latencyWindow) percentile(p float64) time.Duration {
	if len(w.values) == 0 {
		return 0
	}

	sorted := slices.Clone(w.values)
	slices.Sort(sorted)

	rank := int(float64(len(sorted)-1) * p / 100)
	rank = max(0, min(rank, len(sorted)-1))

	return sorted[rank]
}

// probe is the mutable record of one registered pinger.
type probe struct {
	mu                  sync.Mutex
	pinger              Pinger
	readyCritical       bool
	healthCritical      bool
	timeout             time.Duration
	lastRun             time.Time
	lastLatency         time.Duration
	lastError           error
	lastErrorAt         time.Time
	successCount        int
	errorCount          int
	consecutiveFailures int
	latencies           latencyWindow
}

func (p *probe) record(at time.Time, latency time.Duration, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastRun = at
	p.lastLatency = latency
	p.lastError = err

	if err != nil {
		p.errorCount++
		p.consecutiveFailures++
		p.lastErrorAt = at

		return
	}

	p.successCount++
	p.consecutiveFailures = 0
	p.latencies.add(latency)
}

// Statistics is a point-in-time view of one pinger.
type Statistics struct {
	IsReady             bool          `json:"isReady"`
	IsHealthy           bool          `json:"isHealthy"`
	LastRun             time.Time     `json:"lastRun"`
	LastLatency         time.Duration `json:"lastLatency"`
	LastError           string        `json:"lastError,omitempty"`
	LastErrorAt         *time.Time    `json:"lastErrorAt,omitempty"`
	SuccessCount        int           `json:"successCount"`
	ErrorCount          int           `json:"errorCount"`
	ConsecutiveFailures int           `json:"consecutiveFailures"`
	LatencyP50          time.Duration `json:"latencyP50"`
	LatencyP99          time.Duration `json:"latencyP99"`
}

func (p *probe) statistics() *Statistics {
	p.mu.Lock()
	defer p.mu.Unlock()

	failing := p.lastError != nil

	stats := &Statistics{
		IsReady:             !p.readyCritical || !failing,
		IsHealthy:           !p.healthCritical || !failing,
		LastRun:             p.lastRun,
		LastLatency:         p.lastLatency,
		SuccessCount:        p.successCount,
		ErrorCount:          p.errorCount,
		ConsecutiveFailures: p.consecutiveFailures,
		LatencyP50:          p.latencies.percentile(50),
		LatencyP99:          p.latencies.percentile(99),
	}

	if failing {
		stats.LastError = p.lastError.Error()
	}

	if !p.lastErrorAt.IsZero() {
		lastErrorAt := p.lastErrorAt
		stats.LastErrorAt = &lastErrorAt
	}

	return stats
}
