package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the Prometheus collectors the services update. Fields are
// exported so sub-services can update them directly without a lookup layer.
type Metrics struct {
	ReadingsGenerated prometheus.Counter
	Assessments       prometheus.Counter
	AlertsPublished   prometheus.Counter
	FleetEngines      prometheus.Gauge
	SeriesCycles      prometheus.Histogram
}

// New builds and registers all collectors on the default registerer.
func New() *Metrics {
	readings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jedt_readings_generated_total",
		Help: "Total synthetic sensor readings generated.",
	})
	assessments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jedt_assessments_total",
		Help: "Total health assessments computed.",
	})
	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jedt_alerts_published_total",
		Help: "Total fleet alerts raised by the background monitor.",
	})
	fleetEngines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "jedt_fleet_engines",
		Help: "Number of engines in the fleet catalog.",
	})
	seriesCycles := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jedt_series_cycles",
		Help:    "Requested cycle counts per telemetry series.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	prometheus.MustRegister(readings, assessments, alerts, fleetEngines, seriesCycles)

	return &Metrics{
		ReadingsGenerated: readings,
		Assessments:       assessments,
		AlertsPublished:   alerts,
		FleetEngines:      fleetEngines,
		SeriesCycles:      seriesCycles,
	}
}
