// Package metrics counts renders for Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/willbeason/webtree/pkg/tree"
)

// Render collects per-render measurements, labeled by what triggered the
// render (e.g. "http", "watch", "mcp").
type Render struct {
	renders   *prometheus.CounterVec
	truncated *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	segments  *prometheus.HistogramVec
	exports   *prometheus.CounterVec
}

// NewRender creates the collectors and registers them with reg.
func NewRender(reg prometheus.Registerer) *Render {
	m := &Render{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtree_renders_total",
				Help: "Total number of completed tree renders",
			},
			[]string{"trigger"},
		),
		truncated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtree_renders_truncated_total",
				Help: "Renders stopped by the maximum depth instead of the branch threshold",
			},
			[]string{"trigger"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webtree_render_duration_seconds",
				Help:    "Duration of a render including image encoding",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"trigger"},
		),
		segments: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webtree_render_segments",
				Help:    "Number of segments stroked per render",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"trigger"},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtree_exports_total",
				Help: "Image exports by kind and result",
			},
			[]string{"kind", "result"},
		),
	}

	reg.MustRegister(m.renders, m.truncated, m.duration, m.segments, m.exports)
	return m
}

// Observe records one finished render.
func (m *Render) Observe(trigger string, stats tree.Stats, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.renders.WithLabelValues(trigger).Inc()
	if stats.Truncated {
		m.truncated.WithLabelValues(trigger).Inc()
	}
	m.duration.WithLabelValues(trigger).Observe(elapsed.Seconds())
	m.segments.WithLabelValues(trigger).Observe(float64(stats.Segments))
}

// Export records the outcome of a clipboard copy or file save.
func (m *Render) Export(kind string, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	m.exports.WithLabelValues(kind, result).Inc()
}
