package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mention outcomes
const (
	OutcomeMatched  = "matched"
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Metrics holds all custom Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Resolution metrics
	Mentions        *prometheus.CounterVec
	Classifications *prometheus.CounterVec
	ResolveDuration prometheus.Histogram

	// Merge metrics
	Merges                  *prometheus.CounterVec
	MergeSuggestionsPending prometheus.Gauge

	// Generator metrics
	GeneratorRequests *prometheus.CounterVec
}

// New registers the application metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Mentions by outcome (counter - only goes up)
		Mentions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_minutes_mentions_total",
			Help: "Total number of entity mentions processed by outcome",
		}, []string{"outcome"}),

		// Classification decisions by tier and resulting slug
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_minutes_classifications_total",
			Help: "Total number of classification decisions by tier and slug",
		}, []string{"tier", "slug"}),

		ResolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "meeting_minutes_resolve_duration_seconds",
			Help:    "Duration of a mention resolution pass in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),

		Merges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_minutes_merges_total",
			Help: "Total number of merge requests by result",
		}, []string{"result"}), // result: "merged", "rejected" or "error"

		MergeSuggestionsPending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "meeting_minutes_merge_suggestions_pending",
			Help: "Number of merge suggestions found by the last scan",
		}),

		GeneratorRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "meeting_minutes_generator_requests_total",
			Help: "Total number of text generator requests by kind and status",
		}, []string{"kind", "status"}),
	}
}

// RecordMention records the outcome of one mention line
func (m *Metrics) RecordMention(outcome string) {
	if m == nil {
		return
	}
	m.Mentions.WithLabelValues(outcome).Inc()
}

// RecordClassification records which tier decided a slug
func (m *Metrics) RecordClassification(tier, slug string) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(tier, slug).Inc()
}

// RecordResolveDuration records how long a resolution pass took
func (m *Metrics) RecordResolveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.ResolveDuration.Observe(seconds)
}

// RecordMerge records a merge result
func (m *Metrics) RecordMerge(result string) {
	if m == nil {
		return
	}
	m.Merges.WithLabelValues(result).Inc()
}

// SetPendingSuggestions sets the size of the last merge scan
func (m *Metrics) SetPendingSuggestions(n int) {
	if m == nil {
		return
	}
	m.MergeSuggestionsPending.Set(float64(n))
}

// RecordGeneratorRequest records a generator call
func (m *Metrics) RecordGeneratorRequest(kind, status string) {
	if m == nil {
		return
	}
	m.GeneratorRequests.WithLabelValues(kind, status).Inc()
}
