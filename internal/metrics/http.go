package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m Recorder) gin.HandlerFunc {
	// If NoopMetrics, return a lightweight middleware that does nothing
	if _, ok := m.(*NoopMetrics); ok {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	// Type assert to concrete Metrics for Prometheus access
	metrics, ok := m.(*Metrics)
	if !ok {
		// Fallback if unknown implementation
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		// Increment in-flight counter
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		// Process request
		c.Next()

		// Record metrics after request completes
		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // Use route pattern, not actual path
		status := strconv.Itoa(c.Writer.Status())

		// Record request count
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()

		// Record request duration
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath converts the actual request path to route pattern
// Returns the route pattern (e.g., "/users/:id") or the path itself if no match
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

// RecordTokenValidation records the outcome of one access token validation
func (m *Metrics) RecordTokenValidation(result, kind string, duration time.Duration) {
	m.TokenValidationTotal.WithLabelValues(result, kind).Inc()
	m.TokenValidationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordReferenceTokenLookup records whether a handle resolved
func (m *Metrics) RecordReferenceTokenLookup(found bool) {
	result := "found"
	if !found {
		result = "not_found"
	}
	m.ReferenceTokenLookupsTotal.WithLabelValues(result).Inc()
}

// RecordLivenessCheck records a client or user liveness decision
func (m *Metrics) RecordLivenessCheck(subject string, active bool) {
	result := "active"
	if !active {
		result = "inactive"
	}
	m.LivenessChecksTotal.WithLabelValues(subject, result).Inc()
}

// RecordExternalAPICall records external API call duration
func (m *Metrics) RecordExternalAPICall(provider string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss
func (m *Metrics) RecordCacheLookup(cache string, hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	m.CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// SetActiveReferenceTokensCount sets the current count of stored reference tokens (for periodic updates)
func (m *Metrics) SetActiveReferenceTokensCount(count int) {
	m.ReferenceTokensActive.Set(float64(count))
}

// SetActiveClientsCount sets the current count of enabled clients (for periodic updates)
func (m *Metrics) SetActiveClientsCount(count int) {
	m.ClientsActive.Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
