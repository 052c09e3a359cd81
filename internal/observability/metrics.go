package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment engine.
type Metrics struct {
	AssessmentsComputed prometheus.Counter
	AssessmentDuration  prometheus.Histogram
	CommunityViews      prometheus.Counter
	StoreErrors         prometheus.Counter
	PublishErrors       prometheus.Counter

	// Climate resolution metrics.
	ClimateLookups     *prometheus.CounterVec   // labels: source={city,zone,default,observed}
	ClimateCache       *prometheus.CounterVec   // labels: result={hit,miss}
	ClimateAPIDuration prometheus.Histogram
	ClimateAPIEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "assessments_computed_total",
			Help:      "Total assessments computed through the full pipeline.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainharvest",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete assessment computation including climate resolution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		CommunityViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "community_views_total",
			Help:      "Total community leaderboard aggregations served.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "store_errors_total",
			Help:      "Total assessment store failures.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "publish_errors_total",
			Help:      "Total assessment event publish failures.",
		}),
		ClimateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "climate_lookups_total",
			Help:      "Climate resolutions by source tier.",
		}, []string{"source"}),
		ClimateCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainharvest",
			Name:      "climate_cache_total",
			Help:      "Climate source cache lookups by result.",
		}, []string{"result"}),
		ClimateAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainharvest",
			Name:      "climate_api_duration_seconds",
			Help:      "External climate API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ClimateAPIEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainharvest",
			Name:      "climate_api_enabled",
			Help:      "1 when the external climate source is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsComputed,
		m.AssessmentDuration,
		m.CommunityViews,
		m.StoreErrors,
		m.PublishErrors,
		m.ClimateLookups,
		m.ClimateCache,
		m.ClimateAPIDuration,
		m.ClimateAPIEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsComputed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "assessments_computed_total"}),
		AssessmentDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rainharvest", Name: "assessment_duration_seconds"}),
		CommunityViews:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "community_views_total"}),
		StoreErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "store_errors_total"}),
		PublishErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rainharvest", Name: "publish_errors_total"}),
		ClimateLookups:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "rainharvest", Name: "climate_lookups_total"}, []string{"source"}),
		ClimateCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "rainharvest", Name: "climate_cache_total"}, []string{"result"}),
		ClimateAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rainharvest", Name: "climate_api_duration_seconds"}),
		ClimateAPIEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rainharvest", Name: "climate_api_enabled"}),
	}
}
