package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/go-authgate/tokenguard/internal/client"
	"github.com/go-authgate/tokenguard/internal/config"
	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/services"
	"github.com/go-authgate/tokenguard/internal/store"
	"github.com/go-authgate/tokenguard/internal/token"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/jonboulle/clockwork"
)

// initializeUserService builds the subject liveness check. USER_SERVICE_MODE=none
// yields nil, which disables the check.
func initializeUserService(
	cfg *config.Config,
	db *store.Store,
	clock clockwork.Clock,
	m core.Recorder,
) (*services.UserService, error) {
	switch cfg.UserServiceMode {
	case config.UserServiceNone:
		return nil, nil //nolint:nilnil // liveness check disabled
	case config.UserServiceHTTPAPI:
		apiClient, err := client.CreateRetryClient(client.RetryClientConfig{
			AuthMode:           cfg.UserAPIAuthMode,
			AuthSecret:         cfg.UserAPISecret,
			AuthHeader:         cfg.UserAPIAuthHeader,
			Timeout:            cfg.UserAPITimeout,
			InsecureSkipVerify: cfg.UserAPIInsecureSkipVerify,
			MaxRetries:         cfg.UserAPIMaxRetries,
			RetryDelay:         cfg.UserAPIRetryDelay,
			MaxRetryDelay:      cfg.UserAPIMaxRetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize user API client: %w", err)
		}
		return services.NewUserService(services.UserServiceConfig{
			Mode:      services.UserModeHTTPAPI,
			APIURL:    cfg.UserAPIURL,
			APIClient: apiClient,
			Clock:     clock,
		}, nil, m)
	default:
		return services.NewUserService(services.UserServiceConfig{
			Mode:  services.UserModeDatabase,
			Clock: clock,
		}, db, m)
	}
}

// initializeVerifier builds the JWT verifier from JWT_SECRET and/or
// JWT_PUBLIC_KEY_FILE. Without keys it returns nil and every self-contained
// token is rejected.
func initializeVerifier(cfg *config.Config, clock clockwork.Clock) (*token.Verifier, error) {
	if !cfg.HasSigningKeys() {
		return nil, nil //nolint:nilnil // reference tokens only
	}

	var keys []token.Key
	if cfg.JWTSecret != "" {
		keys = append(keys, token.HMACKey(cfg.JWTKeyID, []byte(cfg.JWTSecret)))
	}
	if cfg.JWTPublicKeyFile != "" {
		key, err := token.LoadPublicKeyFile(cfg.JWTKeyID, cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	verifier, err := token.NewVerifier(token.VerifierConfig{
		Issuer:     cfg.TokenIssuer,
		Audience:   cfg.TokenAudience,
		Keys:       keys,
		Algorithms: cfg.JWTAlgorithms,
	}, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT verifier: %w", err)
	}
	return verifier, nil
}

// initializeValidator wires the validator. Nil optional collaborators are
// left out so the validator sees a nil interface rather than a typed nil.
func initializeValidator(
	refs core.ReferenceTokenStore,
	verifier *token.Verifier,
	clients core.ClientStore,
	users *services.UserService,
	clock clockwork.Clock,
	m core.Recorder,
	logger *slog.Logger,
) (*validation.Validator, error) {
	opts := []validation.Option{
		validation.WithReferenceTokenStore(refs),
		validation.WithClientStore(clients),
		validation.WithClock(clock),
		validation.WithMetrics(m),
		validation.WithLogger(logger),
	}
	if verifier != nil {
		opts = append(opts, validation.WithVerifier(verifier))
	}
	if users != nil {
		opts = append(opts, validation.WithUserService(users))
	}
	return validation.NewValidator(opts...)
}
