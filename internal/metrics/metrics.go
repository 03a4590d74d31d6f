package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the VectorGov client
type Metrics struct {
	// API client metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Alert dispatcher metrics
	AlertsSentTotal       *prometheus.CounterVec
	AlertsSuppressedTotal *prometheus.CounterVec
	AlertChannelFailures  *prometheus.CounterVec

	// Security helper metrics
	RateLimitRejectionsTotal prometheus.Counter
	PIIDetectionsTotal       *prometheus.CounterVec
	InjectionDetectionsTotal prometheus.Counter
	CircuitBreakerState      *prometheus.GaugeVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Get returns the process-wide metrics set, registering it on first use.
// Registration happens once so repeated client or dispatcher
// construction is safe.
func Get() *Metrics {
	once.Do(func() {
		defaultMetrics = newMetrics()
	})
	return defaultMetrics
}

func newMetrics() *Metrics {
	return &Metrics{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vectorgov_api_requests_total",
				Help: "Total number of requests made to the VectorGov API",
			},
			[]string{"endpoint", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vectorgov_api_request_duration_seconds",
				Help:    "Duration of VectorGov API requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),

		AlertsSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vectorgov_alerts_sent_total",
				Help: "Total number of alerts delivered, by channel and severity",
			},
			[]string{"channel", "severity"},
		),

		AlertsSuppressedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vectorgov_alerts_suppressed_total",
				Help: "Total number of alerts dropped by the severity or cooldown gate",
			},
			[]string{"reason"},
		),

		AlertChannelFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vectorgov_alert_channel_failures_total",
				Help: "Total number of failed alert channel deliveries",
			},
			[]string{"channel"},
		),

		RateLimitRejectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vectorgov_rate_limit_rejections_total",
				Help: "Total number of requests rejected by the client-side rate limiter",
			},
		),

		PIIDetectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vectorgov_pii_detections_total",
				Help: "Total number of PII matches found in scanned content",
			},
			[]string{"pii_type"},
		),

		InjectionDetectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "vectorgov_injection_detections_total",
				Help: "Total number of prompt injection attempts detected",
			},
		),

		CircuitBreakerState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vectorgov_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

// RecordAPIRequest records one API request outcome
func (m *Metrics) RecordAPIRequest(endpoint, status string, duration time.Duration) {
	m.APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAlertSent records a successful channel delivery
func (m *Metrics) RecordAlertSent(channel, severity string) {
	m.AlertsSentTotal.WithLabelValues(channel, severity).Inc()
}

// RecordAlertSuppressed records an alert dropped before construction
func (m *Metrics) RecordAlertSuppressed(reason string) {
	m.AlertsSuppressedTotal.WithLabelValues(reason).Inc()
}

// RecordAlertChannelFailure records a failed channel delivery
func (m *Metrics) RecordAlertChannelFailure(channel string) {
	m.AlertChannelFailures.WithLabelValues(channel).Inc()
}

// RecordRateLimitRejection records a rejected request
func (m *Metrics) RecordRateLimitRejection() {
	m.RateLimitRejectionsTotal.Inc()
}

// RecordPIIDetection records a PII match
func (m *Metrics) RecordPIIDetection(piiType string) {
	m.PIIDetectionsTotal.WithLabelValues(piiType).Inc()
}

// RecordInjectionDetection records a detected injection attempt
func (m *Metrics) RecordInjectionDetection() {
	m.InjectionDetectionsTotal.Inc()
}

// SetCircuitBreakerState updates the breaker state gauge
func (m *Metrics) SetCircuitBreakerState(service string, state float64) {
	m.CircuitBreakerState.WithLabelValues(service).Set(state)
}
