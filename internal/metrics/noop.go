package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordTokenValidation(result, kind string, duration time.Duration) {}
func (n *NoopMetrics) RecordReferenceTokenLookup(found bool)                             {}
func (n *NoopMetrics) RecordLivenessCheck(subject string, active bool)                   {}
func (n *NoopMetrics) RecordExternalAPICall(provider string, duration time.Duration)     {}
func (n *NoopMetrics) RecordCacheLookup(cache string, hit bool)                          {}
func (n *NoopMetrics) SetActiveReferenceTokensCount(count int)                           {}
func (n *NoopMetrics) SetActiveClientsCount(count int)                                   {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                         {}
