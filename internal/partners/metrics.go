package partners

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	partnerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partners_requests_total",
			Help: "Total number of partner requests",
		},
		[]string{"status"},
	)

	connectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partners_connections_total",
			Help: "Total number of connections created",
		},
	)

	dailyPicksGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partners_daily_picks_generated_total",
			Help: "Total number of daily picks generated",
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partners_match_scores",
			Help:    "Distribution of computed match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	insufficientDataTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partners_insufficient_data_total",
			Help: "Match computations skipped due to sparse profiles",
		},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partners_searches_total",
			Help: "Total number of partner searches",
		},
		[]string{"mode"},
	)

	discoverFeedSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partners_discover_feed_size",
			Help:    "Number of candidates returned per discover request",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)
)

func RecordPartnerRequest(status string) {
	partnerRequestsTotal.WithLabelValues(status).Inc()
}

func RecordConnection() {
	connectionsTotal.Inc()
}

func RecordMatchScore(score int) {
	matchScores.Observe(float64(score))
}

func RecordInsufficientData() {
	insufficientDataTotal.Inc()
}

func RecordSearch(mode string) {
	searchesTotal.WithLabelValues(mode).Inc()
}

func RecordDiscoverFeed(size int) {
	discoverFeedSize.Observe(float64(size))
}

func RecordDailyPicks(count int) {
	dailyPicksGenerated.Add(float64(count))
}
