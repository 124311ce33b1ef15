package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset metrics, set once at startup.
	DatasetRows    prometheus.Gauge
	DatasetYears   prometheus.Gauge
	DatasetLocated prometheus.Gauge

	// Render cycle metrics.
	RendersTotal   prometheus.Counter
	RenderDuration prometheus.Histogram
	SelectedYears  prometheus.Histogram
	MapMarkers     prometheus.Histogram
	FallbackCenter prometheus.Counter

	// Sessions and exports.
	SessionsActive   prometheus.Gauge
	SessionEvictions prometheus.Counter
	Exports          *prometheus.CounterVec // labels: format={html,png,geojson,json}, outcome={success,error}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()

	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetYears,
		m.DatasetLocated,
		m.RendersTotal,
		m.RenderDuration,
		m.SelectedYears,
		m.MapMarkers,
		m.FallbackCenter,
		m.SessionsActive,
		m.SessionEvictions,
		m.Exports,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streetlight_dashboard",
			Name:      "dataset_rows",
			Help:      "Incident rows loaded from the dataset.",
		}),
		DatasetYears: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streetlight_dashboard",
			Name:      "dataset_years",
			Help:      "Distinct years available in the selector.",
		}),
		DatasetLocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streetlight_dashboard",
			Name:      "dataset_located_ratio",
			Help:      "Fraction of rows with a drawable coordinate pair.",
		}),
		RendersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetlight_dashboard",
			Name:      "renders_total",
			Help:      "Total selection changes rendered into a bar and map pair.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streetlight_dashboard",
			Name:      "render_duration_seconds",
			Help:      "Duration of a filter, aggregate and build cycle.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SelectedYears: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streetlight_dashboard",
			Name:      "selected_years",
			Help:      "Number of years per rendered selection.",
			Buckets:   []float64{1, 2, 3, 4, 5, 10},
		}),
		MapMarkers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "streetlight_dashboard",
			Name:      "map_markers",
			Help:      "Markers drawn per rendered map.",
			Buckets:   []float64{0, 10, 50, 100, 500, 1000, 5000},
		}),
		FallbackCenter: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetlight_dashboard",
			Name:      "map_fallback_center_total",
			Help:      "Renders whose map had no drawable point and used the fallback center.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "streetlight_dashboard",
			Name:      "sessions_active",
			Help:      "Browser sessions currently holding a selection.",
		}),
		SessionEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streetlight_dashboard",
			Name:      "session_evictions_total",
			Help:      "Sessions dropped from the bounded session cache.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streetlight_dashboard",
			Name:      "exports_total",
			Help:      "Figure exports by format and outcome.",
		}, []string{"format", "outcome"}),
	}
}
