// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records pipeline counters on a prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Summary outcomes recorded by ObserveQuery.
const (
	OutcomeAnswered = "answered"
	OutcomeNoInfo   = "no_information"
	OutcomeFailed   = "summarize_failed"
)

// Recorder holds the pipeline collectors. A nil *Recorder is valid and
// records nothing, so callers that do not expose metrics can pass nil.
type Recorder struct {
	documents *prometheus.CounterVec
	empty     *prometheus.CounterVec
	queries   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "research_documents_gathered_total",
				Help: "Total number of documents returned by each source",
			},
			[]string{"source"},
		),
		empty: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "research_source_empty_total",
				Help: "Total number of queries for which a source returned nothing",
			},
			[]string{"source"},
		),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "research_queries_total",
				Help: "Total number of queries by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "research_query_duration_seconds",
				Help:    "Duration of one query cycle in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(r.documents, r.empty, r.queries, r.duration)
	return r
}

// ObserveSource records how many documents one source contributed.
func (r *Recorder) ObserveSource(tag types.SourceTag, n int) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(string(tag)).Add(float64(n))
	if n == 0 {
		r.empty.WithLabelValues(string(tag)).Inc()
	}
}

// ObserveQuery records the outcome and duration of one query cycle.
func (r *Recorder) ObserveQuery(outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.queries.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(d.Seconds())
}
