package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every collector name.
const Namespace = "kumihan"

// Prometheus records parser events as Prometheus collectors.
//
// Metrics:
//   - kumihan_parse_duration_seconds: parse latency by path (sequential, parallel)
//   - kumihan_parse_nodes: top-level node count per parse
//   - kumihan_cache_requests_total: result cache lookups by outcome (hit, miss)
//   - kumihan_chunk_duration_seconds: chunk latency
//   - kumihan_chunk_lines: chunk size in lines
//   - kumihan_chunk_failures_total: failed chunks by reason
//   - kumihan_memory_pressure_total: sampled pressure events by level
type Prometheus struct {
	parseDuration  *prometheus.HistogramVec
	parseNodes     prometheus.Histogram
	cacheRequests  *prometheus.CounterVec
	chunkDuration  prometheus.Histogram
	chunkLines     prometheus.Histogram
	chunkFailures  *prometheus.CounterVec
	memoryPressure *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with registry.
func NewPrometheus(registry prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "parse_duration_seconds",
				Help:      "Parse latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"path"},
		),

		parseNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "parse_nodes",
				Help:      "Top-level nodes produced per parse",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),

		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "cache_requests_total",
				Help:      "Result cache lookups by outcome",
			},
			[]string{"outcome"},
		),

		chunkDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "chunk_duration_seconds",
				Help:      "Chunk processing latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),

		chunkLines: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "chunk_lines",
				Help:      "Lines per processed chunk",
				Buckets:   prometheus.ExponentialBuckets(50, 2, 8),
			},
		),

		chunkFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "chunk_failures_total",
				Help:      "Chunks replaced by error nodes, by reason",
			},
			[]string{"reason"},
		),

		memoryPressure: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "memory_pressure_total",
				Help:      "Memory samples above the warning threshold, by level",
			},
			[]string{"level"},
		),
	}

	registry.MustRegister(
		p.parseDuration,
		p.parseNodes,
		p.cacheRequests,
		p.chunkDuration,
		p.chunkLines,
		p.chunkFailures,
		p.memoryPressure,
	)

	return p
}

func (p *Prometheus) ObserveParse(d time.Duration, nodes int, parallel bool) {
	path := "sequential"
	if parallel {
		path = "parallel"
	}

	p.parseDuration.WithLabelValues(path).Observe(d.Seconds())
	p.parseNodes.Observe(float64(nodes))
}

func (p *Prometheus) CacheHit()  { p.cacheRequests.WithLabelValues("hit").Inc() }
func (p *Prometheus) CacheMiss() { p.cacheRequests.WithLabelValues("miss").Inc() }

func (p *Prometheus) ObserveChunk(d time.Duration, lines int) {
	p.chunkDuration.Observe(d.Seconds())
	p.chunkLines.Observe(float64(lines))
}

func (p *Prometheus) ChunkFailed(reason string) {
	p.chunkFailures.WithLabelValues(reason).Inc()
}

func (p *Prometheus) MemoryPressure(level string) {
	p.memoryPressure.WithLabelValues(level).Inc()
}

// WriteText writes every metric family gathered from g to w in the
// Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
