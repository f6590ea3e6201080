package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/store"

	retry "github.com/appleboy/go-httpretry"
	"github.com/jonboulle/clockwork"
)

const (
	UserModeDatabase = "database"
	UserModeHTTPAPI  = "http_api"

	userAPIProvider = "user_api"
)

var _ core.UserService = (*UserService)(nil)

// userStore is the subset of store.Store used in database mode.
type userStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// UserServiceConfig selects how subject liveness is decided.
type UserServiceConfig struct {
	Mode   string
	APIURL string
	// APIClient authenticates and retries calls to APIURL, see
	// client.CreateRetryClient. Required in http_api mode.
	APIClient *retry.Client
	Clock     clockwork.Clock
}

// UserService answers whether the subject of a delegated token is active,
// either from the local users table or from an external HTTP API.
type UserService struct {
	mode    string
	store   userStore
	apiURL  string
	client  *retry.Client
	clock   clockwork.Clock
	metrics core.Recorder
}

// NewUserService validates cfg and builds the service. s is required in
// database mode and ignored otherwise.
func NewUserService(cfg UserServiceConfig, s userStore, m core.Recorder) (*UserService, error) {
	if m == nil {
		m = metrics.NewNoopMetrics()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	svc := &UserService{
		mode:    cfg.Mode,
		store:   s,
		apiURL:  cfg.APIURL,
		client:  cfg.APIClient,
		clock:   cfg.Clock,
		metrics: m,
	}

	switch cfg.Mode {
	case UserModeDatabase:
		if s == nil {
			return nil, fmt.Errorf("%w: database mode needs a user store", ErrUserServiceConfig)
		}
	case UserModeHTTPAPI:
		if cfg.APIURL == "" {
			return nil, fmt.Errorf("%w: http_api mode needs an API URL", ErrUserServiceConfig)
		}
		if cfg.APIClient == nil {
			return nil, fmt.Errorf("%w: http_api mode needs an API client", ErrUserServiceConfig)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUserMode, cfg.Mode)
	}
	return svc, nil
}

// IsActive reports whether subject may still use its tokens. Unknown
// subjects are inactive.
func (s *UserService) IsActive(
	ctx context.Context,
	subject string,
	claims []models.Claim,
) (bool, error) {
	if s.mode == UserModeHTTPAPI {
		return s.isActiveHTTPAPI(ctx, subject, claims)
	}

	user, err := s.store.GetUserByID(ctx, subject)
	if errors.Is(err, store.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

// UserActiveRequest is the payload posted to the user API
type UserActiveRequest struct {
	Subject string         `json:"subject"`
	Claims  map[string]any `json:"claims"`
}

// UserActiveResponse is the expected user API answer
type UserActiveResponse struct {
	Active  bool   `json:"active"`
	Message string `json:"message,omitempty"`
}

func (s *UserService) isActiveHTTPAPI(
	ctx context.Context,
	subject string,
	claims []models.Claim,
) (bool, error) {
	payload, err := json.Marshal(UserActiveRequest{
		Subject: subject,
		Claims:  models.ClaimsToMap(claims),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := s.clock.Now()
	resp, err := s.client.Post(
		ctx,
		s.apiURL,
		retry.WithBody("application/json", bytes.NewReader(payload)),
	)
	s.metrics.RecordExternalAPICall(userAPIProvider, s.clock.Since(start))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUserAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("%w: failed to read response", ErrUserAPIInvalidResp)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Limit body preview to 200 characters to avoid overwhelming logs
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return false, fmt.Errorf("%w: HTTP %d - %s", ErrUserAPIInvalidResp, resp.StatusCode, preview)
	}

	var out UserActiveResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUserAPIInvalidResp, err)
	}
	return out.Active, nil
}
