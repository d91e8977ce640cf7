package bloch

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

const defaultLatencyWindow = 1000

// MetricsSnapshot is a point-in-time copy of RenderMetrics.
type MetricsSnapshot struct {
	Redraws     map[string]int64 `json:"redraws"`
	Errors      int64            `json:"errors"`
	MeanLatency time.Duration    `json:"mean_latency"`
	P95Latency  time.Duration    `json:"p95_latency"`
	P99Latency  time.Duration    `json:"p99_latency"`
}

/*
RenderMetrics counts redraws per series and keeps a sliding window of redraw
latencies. Wrap puts it in front of a Renderer.
*/
type RenderMetrics struct {
	mu        sync.Mutex
	redraws   map[string]int64
	errors    int64
	latencies []float64
	window    int
	now       func() time.Time
}

func NewRenderMetrics() *RenderMetrics {
	return &RenderMetrics{
		redraws:   make(map[string]int64),
		latencies: make([]float64, 0, defaultLatencyWindow),
		window:    defaultLatencyWindow,
		now:       time.Now,
	}
}

// Wrap returns a Renderer that forwards to r and records every call.
func (m *RenderMetrics) Wrap(r Renderer) Renderer {
	return RendererFunc(func(name string, s Series) error {
		start := m.now()
		err := r.Redraw(name, s)
		m.record(name, m.now().Sub(start), err)
		return err
	})
}

func (m *RenderMetrics) record(name string, latency time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.errors++
		return
	}

	m.redraws[name]++
	m.latencies = append(m.latencies, float64(latency))
	if len(m.latencies) > m.window {
		m.latencies = m.latencies[len(m.latencies)-m.window:]
	}
}

func (m *RenderMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Redraws: make(map[string]int64, len(m.redraws)),
		Errors:  m.errors,
	}
	for name, n := range m.redraws {
		snap.Redraws[name] = n
	}

	if len(m.latencies) == 0 {
		return snap
	}

	sorted := append([]float64(nil), m.latencies...)
	sort.Float64s(sorted)

	snap.MeanLatency = time.Duration(stat.Mean(sorted, nil))
	snap.P95Latency = time.Duration(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	snap.P99Latency = time.Duration(stat.Quantile(0.99, stat.Empirical, sorted, nil))
	return snap
}
