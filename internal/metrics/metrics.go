package metrics

import (
	"sync"

	"github.com/go-authgate/tokenguard/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics contract shared by the validator, services and
// background jobs.
type Recorder = core.Recorder

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Token Validation Metrics
	TokenValidationTotal       *prometheus.CounterVec
	TokenValidationDuration    *prometheus.HistogramVec
	ReferenceTokenLookupsTotal *prometheus.CounterVec
	ReferenceTokensActive      prometheus.Gauge

	// Liveness Metrics
	LivenessChecksTotal *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ClientsActive       prometheus.Gauge

	// Cache Metrics
	CacheLookupsTotal *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		// Token Validation Metrics
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenguard_token_validation_total",
				Help: "Total number of access token validations",
			},
			// result: success, invalid_token, expired_token, insufficient_scope, infrastructure_error
			[]string{"result", "kind"}, // kind: jwt, reference
		),
		TokenValidationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenguard_token_validation_duration_seconds",
				Help:    "Time taken to validate access tokens",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		ReferenceTokenLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenguard_reference_token_lookups_total",
				Help: "Total number of reference token store lookups",
			},
			[]string{"result"}, // found, not_found
		),
		ReferenceTokensActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tokenguard_reference_tokens_active",
				Help: "Current number of unexpired reference tokens in the durable store",
			},
		),

		// Liveness Metrics
		LivenessChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenguard_liveness_checks_total",
				Help: "Total number of client and user liveness checks",
			},
			[]string{"subject", "result"}, // subject: client, user; result: active, inactive
		),
		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tokenguard_external_api_duration_seconds",
				Help:    "Time taken for external liveness API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"}, // http_api
		),
		ClientsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tokenguard_clients_active",
				Help: "Current number of enabled OAuth clients",
			},
		),

		// Cache Metrics
		CacheLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tokenguard_cache_lookups_total",
				Help: "Total number of cache lookups",
			},
			[]string{"cache", "result"}, // result: hit, miss
		),

		// HTTP Request Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		// Database Query Metrics
		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_reference_tokens, count_clients
		),
	}

	return m
}
