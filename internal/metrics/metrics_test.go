package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	m := Init(true)
	assert.NotNil(t, m)

	// Type assert to concrete Metrics to access fields
	metrics, ok := m.(*Metrics)
	assert.True(t, ok, "Init(true) should return *Metrics")
	assert.NotNil(t, metrics.TokenValidationTotal)
	assert.NotNil(t, metrics.ReferenceTokenLookupsTotal)
	assert.NotNil(t, metrics.LivenessChecksTotal)
	assert.NotNil(t, metrics.HTTPRequestsTotal)

	// Second call returns the same registered instance
	assert.Same(t, metrics, Init(true))
}

func TestInitNoop(t *testing.T) {
	m := Init(false)
	assert.NotNil(t, m)

	// Type assert to NoopMetrics
	_, ok := m.(*NoopMetrics)
	assert.True(t, ok, "Init(false) should return *NoopMetrics")
}

func TestRecordTokenValidation(t *testing.T) {
	m := Init(true).(*Metrics)
	before := testutil.ToFloat64(m.TokenValidationTotal.WithLabelValues("expired_token", "reference"))

	m.RecordTokenValidation("success", "jwt", 2*time.Millisecond)
	m.RecordTokenValidation("expired_token", "reference", time.Millisecond)

	after := testutil.ToFloat64(m.TokenValidationTotal.WithLabelValues("expired_token", "reference"))
	assert.Equal(t, before+1, after)
}

func TestRecordReferenceTokenLookup(t *testing.T) {
	m := Init(true).(*Metrics)
	before := testutil.ToFloat64(m.ReferenceTokenLookupsTotal.WithLabelValues("not_found"))

	m.RecordReferenceTokenLookup(true)
	m.RecordReferenceTokenLookup(false)

	assert.Equal(t, before+1, testutil.ToFloat64(m.ReferenceTokenLookupsTotal.WithLabelValues("not_found")))
}

func TestRecordLivenessCheck(t *testing.T) {
	m := Init(true).(*Metrics)
	before := testutil.ToFloat64(m.LivenessChecksTotal.WithLabelValues("user", "inactive"))

	m.RecordLivenessCheck("client", true)
	m.RecordLivenessCheck("user", false)

	assert.Equal(t, before+1, testutil.ToFloat64(m.LivenessChecksTotal.WithLabelValues("user", "inactive")))
}

func TestRecordCacheLookup(t *testing.T) {
	m := Init(true).(*Metrics)
	before := testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("clients", "hit"))

	m.RecordCacheLookup("clients", true)
	m.RecordCacheLookup("clients", false)

	assert.Equal(t, before+1, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("clients", "hit")))
}

func TestRecordExternalAPICall(t *testing.T) {
	m := Init(true)

	m.RecordExternalAPICall("http_api", 300*time.Millisecond)
	// No error means success
}

func TestGauges(t *testing.T) {
	m := Init(true).(*Metrics)

	m.SetActiveReferenceTokensCount(12)
	m.SetActiveClientsCount(3)
	m.RecordDatabaseQueryError("count_clients")

	assert.Equal(t, float64(12), testutil.ToFloat64(m.ReferenceTokensActive))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ClientsActive))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := Init(true).(*Metrics)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(m))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestHTTPMetricsMiddleware_Noop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(HTTPMetricsMiddleware(NewNoopMetrics()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		fullPath string
		expected string
	}{
		{"empty path", "", "unknown"},
		{"root path", "/", "/"},
		{"health check", "/health", "/health"},
		{"validation endpoint", "/connect/accesstokenvalidation", "/connect/accesstokenvalidation"},
		{"parameterized", "/users/:id", "/users/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizePath(tt.fullPath)
			assert.Equal(t, tt.expected, result)
		})
	}
}
