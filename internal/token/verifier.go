package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// VerifierConfig is the trust configuration of a Verifier.
type VerifierConfig struct {
	// Issuer must equal the token's iss claim exactly.
	Issuer string
	// Audience must be one of the token's aud values.
	Audience string
	// Keys are tried in order. A token carrying a kid header only matches
	// keys with that ID or with no ID.
	Keys []Key
	// Algorithms restricts the accepted alg header values. Empty means every
	// algorithm the configured keys support.
	Algorithms []string
}

// Verifier validates self-contained access tokens.
type Verifier struct {
	issuer   string
	audience string
	keys     []Key
	parser   *jwt.Parser
	clock    clockwork.Clock
}

// NewVerifier builds a verifier from cfg. A nil clock uses the wall clock.
func NewVerifier(cfg VerifierConfig, clock clockwork.Clock) (*Verifier, error) {
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("%w: issuer is required", ErrVerifierConfig)
	}
	if cfg.Audience == "" {
		return nil, fmt.Errorf("%w: audience is required", ErrVerifierConfig)
	}
	if len(cfg.Keys) == 0 {
		return nil, fmt.Errorf("%w: at least one key is required", ErrVerifierConfig)
	}

	algs := cfg.Algorithms
	if len(algs) == 0 {
		for _, k := range cfg.Keys {
			for _, alg := range k.algorithms() {
				if !slices.Contains(algs, alg) {
					algs = append(algs, alg)
				}
			}
		}
	}
	if len(algs) == 0 {
		return nil, fmt.Errorf("%w: no usable key material", ErrVerifierConfig)
	}

	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	// Time based claims are checked against the injected clock below, so
	// the library's own wall-clock validation is disabled.
	parser := jwt.NewParser(
		jwt.WithValidMethods(algs),
		jwt.WithJSONNumber(),
		jwt.WithoutClaimsValidation(),
	)

	return &Verifier{
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		keys:     slices.Clone(cfg.Keys),
		parser:   parser,
		clock:    clock,
	}, nil
}

// Verify checks raw and returns its claims. Decoding and signature failures
// wrap ErrMalformedToken; issuer, audience and lifetime failures wrap
// ErrInvalidToken.
func (v *Verifier) Verify(raw string) ([]models.Claim, error) {
	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, v.keyFunc); err != nil {
		return nil, malformed(err)
	}

	iss, err := claims.GetIssuer()
	if err != nil || iss != v.issuer {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrIssuerMismatch)
	}

	aud, err := claims.GetAudience()
	if err != nil || !slices.Contains(aud, v.audience) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrAudienceMismatch)
	}

	now := v.clock.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrMissingExpiry)
	}
	if !exp.After(now) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenNotYetValid)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenNotYetValid)
	}

	return flattenClaims(claims), nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	for _, k := range v.keys {
		if kid != "" && k.ID != "" && k.ID != kid {
			continue
		}
		if k.accepts(t.Method) {
			return k.Material, nil
		}
	}
	return nil, ErrNoMatchingKey
}

func malformed(err error) error {
	switch {
	case errors.Is(err, ErrNoMatchingKey):
		return fmt.Errorf("%w: %w", ErrMalformedToken, ErrNoMatchingKey)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrMalformedToken, ErrBadSignature)
	default:
		return fmt.Errorf("%w: %w: %v", ErrMalformedToken, ErrUndecodable, err)
	}
}

// flattenClaims turns a decoded claim set into ordered (type, value) pairs.
// Keys are sorted; array values become one claim per element and a space
// delimited scope string becomes one scope claim per scope.
func flattenClaims(claims jwt.MapClaims) []models.Claim {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.Claim, 0, len(keys))
	for _, k := range keys {
		switch v := claims[k].(type) {
		case []any:
			for _, item := range v {
				out = append(out, models.Claim{Type: k, Value: claimString(item)})
			}
		case string:
			if k == models.ClaimScope {
				for _, s := range strings.Fields(v) {
					out = append(out, models.Claim{Type: k, Value: s})
				}
				continue
			}
			out = append(out, models.Claim{Type: k, Value: v})
		default:
			out = append(out, models.Claim{Type: k, Value: claimString(v)})
		}
	}
	return out
}

func claimString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
