package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the API exposes. Each instance
// carries its own registry so tests can build throwaway instances without
// default-registry collisions. HTTP collectors are populated by middleware,
// domain collectors by the services that own the operation.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	AdmissionsTotal *prometheus.CounterVec
	DischargesTotal *prometheus.CounterVec
	BedOccupancy    *prometheus.GaugeVec
	DrugsDispensed  *prometheus.CounterVec
	ADTEventsTotal  *prometheus.CounterVec
	LoginAttempts   *prometheus.CounterVec
}

// LoginOutcome counts a login attempt by outcome: success, failure, locked.
func (m *Metrics) LoginOutcome(outcome string) {
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		AdmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admissions_total",
			Help:      "Total patient admissions recorded",
		}, []string{"hospital_id"}),

		DischargesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discharges_total",
			Help:      "Total patient discharges recorded",
		}, []string{"hospital_id"}),

		BedOccupancy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bed_occupancy",
			Help:      "Current bed counts by room and status",
		}, []string{"hospital_id", "room", "status"}),

		DrugsDispensed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drugs_dispensed_total",
			Help:      "Total drug units administered to patients",
		}, []string{"hospital_id"}),

		ADTEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adt_events_total",
			Help:      "ADT feed events published, by type and outcome",
		}, []string{"event_type", "outcome"}),

		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
	}
}
