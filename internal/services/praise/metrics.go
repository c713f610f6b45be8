package praise

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the praise filter's Prometheus collectors.
type Metrics struct {
	// Classifications counts decisions by outcome (praise, kept) and reason
	Classifications *prometheus.CounterVec
	// EmbeddingLatency observes the duration of each embedding backend batch
	EmbeddingLatency prometheus.Histogram
	// FailOpen counts texts kept because the embedding path was degraded
	FailOpen prometheus.Counter
}

// NewMetrics creates the praise filter collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "painscope_praise_classifications_total",
				Help: "Total praise filter classifications by outcome and reason",
			},
			[]string{"outcome", "reason"},
		),
		EmbeddingLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "painscope_praise_embedding_duration_seconds",
				Help:    "Duration of embedding backend calls made by the praise filter",
				Buckets: prometheus.DefBuckets,
			},
		),
		FailOpen: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "painscope_praise_fail_open_total",
				Help: "Texts kept as non-praise because embeddings were unavailable",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Classifications, m.EmbeddingLatency, m.FailOpen)
	}

	return m
}

func (m *Metrics) record(c Classification) {
	if m == nil {
		return
	}
	outcome := "kept"
	if c.IsPraise {
		outcome = "praise"
	}
	m.Classifications.WithLabelValues(outcome, string(c.Reason)).Inc()
	if c.Reason == ReasonFailOpen {
		m.FailOpen.Inc()
	}
}
