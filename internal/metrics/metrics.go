package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nhc"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Appointment metrics. Labels never carry visitor input other than the
// case type, which is restricted to the configured set.
var (
	AppointmentsComposed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_composed_total",
			Help:      "Total number of WhatsApp appointment links composed",
		},
		[]string{"case_type"},
	)

	AppointmentValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_validation_failures_total",
			Help:      "Total number of appointment field validation failures",
		},
		[]string{"field"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// Media metrics
var (
	MediaAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "media_images_available",
			Help:      "Number of site images available after the last availability check",
		},
	)
)

// AppointmentComposed records a successfully composed deep link.
func AppointmentComposed(caseType string) {
	AppointmentsComposed.WithLabelValues(caseType).Inc()
}

// AppointmentInvalid records one failure per invalid field.
func AppointmentInvalid(fields []string) {
	for _, f := range fields {
		AppointmentValidationFailures.WithLabelValues(f).Inc()
	}
}
