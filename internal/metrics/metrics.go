// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline and the CRM integration.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_uploads_total",
			Help: "Processed spreadsheets by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ads_analysis_duration_seconds",
			Help:    "Wall time of one full analysis pass",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	matchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_reconcile_matches_total",
			Help: "Row matches by tier, including none",
		},
		[]string{"tier"},
	)

	sultsFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ads_sults_fetches_total",
			Help: "Contact snapshot fetches by outcome",
		},
		[]string{"outcome"},
	)
)

var initOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(uploadsTotal, analysisDuration, matchesTotal, sultsFetchesTotal)
	})
}

// RecordUpload counts one processed spreadsheet.
func RecordUpload(source, outcome string) {
	uploadsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordAnalysisDuration observes one analysis pass.
func RecordAnalysisDuration(source string, d time.Duration) {
	analysisDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordMatches counts reconciliation outcomes per tier.
func RecordMatches(tierCounts map[string]int) {
	for tier, n := range tierCounts {
		matchesTotal.WithLabelValues(tier).Add(float64(n))
	}
}

// RecordSultsFetch counts one contact snapshot fetch.
func RecordSultsFetch(outcome string) {
	sultsFetchesTotal.WithLabelValues(outcome).Inc()
}
