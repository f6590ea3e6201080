package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Token validation
	RecordTokenValidation(result, kind string, duration time.Duration)
	RecordReferenceTokenLookup(found bool)

	// Liveness checks against external collaborators
	RecordLivenessCheck(subject string, active bool)
	RecordExternalAPICall(provider string, duration time.Duration)

	// Cache
	RecordCacheLookup(cache string, hit bool)

	// Gauges refreshed by the periodic update job
	SetActiveReferenceTokensCount(count int)
	SetActiveClientsCount(count int)
	RecordDatabaseQueryError(operation string)
}
