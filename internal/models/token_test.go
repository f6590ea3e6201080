package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToken(lifetime int) *Token {
	return &Token{
		Type:         TokenTypeAccess,
		ClientID:     "roclient",
		Subject:      "valid",
		Issuer:       "https://idsrv3.com",
		Audience:     "https://idsrv3.com/resources",
		CreationTime: time.Unix(1700000000, 0).UTC(),
		Lifetime:     lifetime,
		Scopes:       []string{"read", "write"},
	}
}

func TestToken_IsExpired(t *testing.T) {
	tok := newTestToken(600)
	created := tok.CreationTime

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "at creation", now: created, want: false},
		{name: "one second before expiry", now: created.Add(599 * time.Second), want: false},
		{name: "exactly at expiry", now: created.Add(600 * time.Second), want: true},
		{name: "after expiry", now: created.Add(time.Hour), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.IsExpired(tt.now))
		})
	}
}

func TestToken_ToClaims(t *testing.T) {
	tok := newTestToken(600)

	claims := tok.ToClaims()

	require.Len(t, claims, 8)
	assert.Equal(t, Claim{Type: ClaimAudience, Value: "https://idsrv3.com/resources"}, claims[0])
	assert.Equal(t, Claim{Type: ClaimIssuer, Value: "https://idsrv3.com"}, claims[1])
	assert.Equal(t, Claim{Type: ClaimNotBefore, Value: "1700000000"}, claims[2])
	assert.Equal(t, Claim{Type: ClaimExpiration, Value: "1700000600"}, claims[3])

	clientID, ok := FindClaim(claims, ClaimClientID)
	assert.True(t, ok)
	assert.Equal(t, "roclient", clientID)
	assert.Equal(t, []string{"read", "write"}, FindClaims(claims, ClaimScope))
}

func TestToken_ToClaims_ClientCredentials(t *testing.T) {
	tok := newTestToken(600)
	tok.Subject = ""
	tok.Claims = []Claim{{Type: "tenant", Value: "acme"}}

	claims := tok.ToClaims()

	_, ok := FindClaim(claims, ClaimSubject)
	assert.False(t, ok)
	assert.Equal(t, Claim{Type: "tenant", Value: "acme"}, claims[len(claims)-1])
}

func TestToken_ValidFrom(t *testing.T) {
	tok := newTestToken(600)
	assert.Equal(t, tok.CreationTime, tok.ValidFrom())

	tok.NotBefore = tok.CreationTime.Add(time.Minute)
	assert.Equal(t, tok.NotBefore, tok.ValidFrom())
}

func TestReferenceToken_RoundTrip(t *testing.T) {
	tok := newTestToken(600)

	row, err := NewReferenceToken("123", tok)
	require.NoError(t, err)
	assert.Equal(t, "123", row.Handle)
	assert.Equal(t, "roclient", row.ClientID)
	assert.True(t, row.ExpiresAt.Equal(tok.ExpiresAt()))

	decoded, err := row.Token()
	require.NoError(t, err)
	assert.Equal(t, tok.Scopes, decoded.Scopes)
	assert.True(t, decoded.CreationTime.Equal(tok.CreationTime))
}

func TestReferenceToken_CorruptPayload(t *testing.T) {
	row := &ReferenceToken{Handle: "x", Payload: "{not json"}
	_, err := row.Token()
	assert.Error(t, err)
}
