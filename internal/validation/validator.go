// Package validation decides whether a bearer token grants access.
package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/metrics"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/token"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the OpenTelemetry instrumentation scope for validation spans.
const tracerName = "github.com/go-authgate/tokenguard/internal/validation"

const resultInfrastructureError = "infrastructure_error"

// TokenVerifier checks self-contained tokens. *token.Verifier implements it.
type TokenVerifier interface {
	Verify(raw string) ([]models.Claim, error)
}

// Validator validates access tokens. It is safe for concurrent use; every
// call returns a freshly allocated Result.
type Validator struct {
	tokens   core.ReferenceTokenStore
	verifier TokenVerifier
	clients  core.ClientStore
	users    core.UserService
	clock    clockwork.Clock
	metrics  core.Recorder
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Validator.
type Option func(*Validator)

// WithReferenceTokenStore enables reference token validation.
func WithReferenceTokenStore(s core.ReferenceTokenStore) Option {
	return func(v *Validator) { v.tokens = s }
}

// WithVerifier enables self-contained token validation.
func WithVerifier(tv TokenVerifier) Option {
	return func(v *Validator) { v.verifier = tv }
}

// WithClientStore sets the client store. Required.
func WithClientStore(s core.ClientStore) Option {
	return func(v *Validator) { v.clients = s }
}

// WithUserService enables the user liveness check for tokens with a subject.
func WithUserService(s core.UserService) Option {
	return func(v *Validator) { v.users = s }
}

// WithClock sets the clock used for the reference token expiry check.
func WithClock(c clockwork.Clock) Option {
	return func(v *Validator) { v.clock = c }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m core.Recorder) Option {
	return func(v *Validator) { v.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(v *Validator) { v.tracer = tp.Tracer(tracerName) }
}

// NewValidator creates a validator.
func NewValidator(opts ...Option) (*Validator, error) {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.clients == nil {
		return nil, ErrNoClientStore
	}
	if v.clock == nil {
		v.clock = clockwork.NewRealClock()
	}
	if v.metrics == nil {
		v.metrics = metrics.NewNoopMetrics()
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	if v.tracer == nil {
		v.tracer = otel.Tracer(tracerName)
	}
	return v, nil
}

// ValidateAccessToken validates raw and, when requiredScope is not empty,
// requires it among the granted scopes. Rejected tokens yield a Result with
// IsError set; a non-nil error always wraps ErrInfrastructure.
func (v *Validator) ValidateAccessToken(
	ctx context.Context,
	raw string,
	requiredScope string,
) (*Result, error) {
	start := v.clock.Now()
	kind := token.Classify(raw)

	ctx, span := v.tracer.Start(ctx, "validation.ValidateAccessToken",
		trace.WithAttributes(attribute.String("token.kind", kind.String())))
	defer span.End()

	res, err := v.validate(ctx, raw, kind, requiredScope)

	outcome := "success"
	switch {
	case err != nil:
		outcome = resultInfrastructureError
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		v.logger.ErrorContext(ctx, "access token validation failed",
			"kind", kind.String(), "error", err)
	case res.IsError:
		outcome = string(res.Error)
		span.SetAttributes(attribute.String("validation.reason", string(res.reason)))
		v.logger.DebugContext(ctx, "access token rejected",
			"kind", kind.String(), "code", res.Error, "reason", res.reason)
	}
	span.SetAttributes(attribute.String("validation.result", outcome))
	v.metrics.RecordTokenValidation(outcome, kind.String(), v.clock.Since(start))

	return res, err
}

func (v *Validator) validate(
	ctx context.Context,
	raw string,
	kind token.Kind,
	requiredScope string,
) (*Result, error) {
	if raw == "" {
		return failure(ErrorInvalidToken, ReasonEmptyToken), nil
	}

	var (
		res *Result
		err error
	)
	if kind == token.KindReference {
		res, err = v.resolveReference(ctx, raw)
	} else {
		res = v.verifySelfContained(raw)
	}
	if err != nil || res.IsError {
		return res, err
	}

	clientID, _ := res.ClaimValue(models.ClaimClientID)
	if clientID == "" {
		return failure(ErrorInvalidToken, ReasonMissingClientID), nil
	}

	client, err := v.clients.FindClient(ctx, clientID)
	if errors.Is(err, core.ErrClientNotFound) {
		return failure(ErrorInvalidToken, ReasonClientUnknown), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: client %s: %w", ErrInfrastructure, clientID, err)
	}
	v.metrics.RecordLivenessCheck("client", client.IsActive)
	if !client.IsActive {
		return failure(ErrorInvalidToken, ReasonClientInactive), nil
	}
	res.Client = client

	if sub := res.Subject(); sub != "" && v.users != nil {
		active, err := v.users.IsActive(ctx, sub, res.Claims)
		if err != nil {
			return nil, fmt.Errorf("%w: user liveness: %w", ErrInfrastructure, err)
		}
		v.metrics.RecordLivenessCheck("user", active)
		if !active {
			return failure(ErrorInvalidToken, ReasonUserInactive), nil
		}
	}

	if requiredScope != "" && !slices.Contains(res.Scopes(), requiredScope) {
		return failure(ErrorInsufficientScope, ReasonScopeMissing), nil
	}

	return res, nil
}

func (v *Validator) resolveReference(ctx context.Context, handle string) (*Result, error) {
	if v.tokens == nil {
		return failure(ErrorInvalidToken, ReasonTokenStoreMissing), nil
	}

	rec, err := v.tokens.GetToken(ctx, handle)
	if errors.Is(err, core.ErrTokenNotFound) {
		v.metrics.RecordReferenceTokenLookup(false)
		return failure(ErrorInvalidToken, ReasonUnknownHandle), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reference token store: %w", ErrInfrastructure, err)
	}
	v.metrics.RecordReferenceTokenLookup(true)

	// The store may hand back a record whose own lifetime has run out while
	// its cache entry is still live.
	if rec.IsExpired(v.clock.Now()) {
		return failure(ErrorExpiredToken, ReasonReferenceExpired), nil
	}
	if rec.Type != "" && rec.Type != models.TokenTypeAccess {
		return failure(ErrorInvalidToken, ReasonWrongTokenType), nil
	}

	return &Result{
		Claims:           rec.ToClaims(),
		ReferenceToken:   rec,
		ReferenceTokenID: handle,
	}, nil
}

func (v *Validator) verifySelfContained(raw string) *Result {
	if v.verifier == nil {
		return failure(ErrorInvalidToken, ReasonVerifierMissing)
	}

	claims, err := v.verifier.Verify(raw)
	if err != nil {
		return failure(ErrorInvalidToken, reasonFor(err))
	}

	return &Result{
		Claims: claims,
		JWT:    raw,
	}
}

func reasonFor(err error) Reason {
	switch {
	case errors.Is(err, token.ErrBadSignature), errors.Is(err, token.ErrNoMatchingKey):
		return ReasonBadSignature
	case errors.Is(err, token.ErrIssuerMismatch):
		return ReasonIssuerMismatch
	case errors.Is(err, token.ErrAudienceMismatch):
		return ReasonAudienceMismatch
	case errors.Is(err, token.ErrTokenExpired), errors.Is(err, token.ErrMissingExpiry):
		return ReasonJWTExpired
	case errors.Is(err, token.ErrTokenNotYetValid):
		return ReasonNotYetValid
	default:
		return ReasonMalformed
	}
}
