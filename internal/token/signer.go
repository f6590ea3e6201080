package token

import (
	"fmt"

	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer issues self-contained access tokens. It backs the mint command and
// test fixtures; production tokens come from the authorization server.
type Signer struct {
	method jwt.SigningMethod
	key    any
	keyID  string
}

// NewSigner creates a signer for alg (e.g. "HS256", "RS256") with key
// material matching the algorithm family.
func NewSigner(alg string, key any, keyID string) (*Signer, error) {
	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrTokenGeneration, alg)
	}
	return &Signer{method: method, key: key, keyID: keyID}, nil
}

// Sign encodes t as a JWT. Lifetime claims derive from the record's
// creation time and lifetime rather than the wall clock.
func (s *Signer) Sign(t *models.Token) (string, error) {
	claims := jwt.MapClaims{
		models.ClaimIssuer:     t.Issuer,
		models.ClaimAudience:   t.Audience,
		models.ClaimIssuedAt:   t.CreationTime.Unix(),
		models.ClaimNotBefore:  t.ValidFrom().Unix(),
		models.ClaimExpiration: t.ExpiresAt().Unix(),
		models.ClaimClientID:   t.ClientID,
		models.ClaimJWTID:      uuid.NewString(),
	}
	if t.Subject != "" {
		claims[models.ClaimSubject] = t.Subject
	}
	if len(t.Scopes) > 0 {
		claims[models.ClaimScope] = t.Scopes
	}
	for _, c := range t.Claims {
		if _, reserved := claims[c.Type]; reserved {
			continue
		}
		claims[c.Type] = c.Value
	}

	tok := jwt.NewWithClaims(s.method, claims)
	if s.keyID != "" {
		tok.Header["kid"] = s.keyID
	}

	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}
