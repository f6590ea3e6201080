// Package client builds the outbound HTTP client used for user liveness
// calls: request authentication from go-httpclient wrapped in go-httpretry.
package client

import (
	"fmt"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// Auth modes understood by go-httpclient
const (
	AuthModeNone   = "none"
	AuthModeSimple = "simple"
	AuthModeHMAC   = "hmac"
)

// RetryClientConfig describes an authenticated, retrying API client.
type RetryClientConfig struct {
	AuthMode           string // none, simple or hmac
	AuthSecret         string
	AuthHeader         string // simple mode header, X-API-Secret when empty
	Timeout            time.Duration
	InsecureSkipVerify bool
	MaxRetries         int
	RetryDelay         time.Duration
	MaxRetryDelay      time.Duration
}

// CreateRetryClient creates an HTTP client with retry support and authentication.
// This is used for calls to the external user liveness API.
func CreateRetryClient(cfg RetryClientConfig) (*retry.Client, error) {
	mode := cfg.AuthMode
	if mode == "" {
		mode = AuthModeNone
	}

	// Create HTTP client with automatic authentication
	authClient, err := httpclient.NewAuthClient(
		mode,
		cfg.AuthSecret,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithHeaderName(cfg.AuthHeader),
		httpclient.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth client: %w", err)
	}

	// Wrap with retry client
	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(authClient),
		retry.WithMaxRetries(cfg.MaxRetries),
		retry.WithInitialRetryDelay(cfg.RetryDelay),
		retry.WithMaxRetryDelay(cfg.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
