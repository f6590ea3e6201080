package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// TokenTypeAccess is the only token type the validator accepts.
const TokenTypeAccess = "access_token"

// Token is an issued access token record. Reference tokens store it under
// their handle; self-contained tokens carry the same information as JWT claims.
type Token struct {
	Type         string    `json:"type"`
	ClientID     string    `json:"client_id"`
	Subject      string    `json:"sub,omitempty"` // empty for client_credentials tokens
	Issuer       string    `json:"iss"`
	Audience     string    `json:"aud"`
	CreationTime time.Time `json:"creation_time"`
	Lifetime     int       `json:"lifetime"` // seconds
	NotBefore    time.Time `json:"nbf,omitzero"`
	Scopes       []string  `json:"scopes"`
	Claims       []Claim   `json:"claims,omitempty"`
}

// ExpiresAt returns the absolute expiration instant of the token.
func (t *Token) ExpiresAt() time.Time {
	return t.CreationTime.Add(time.Duration(t.Lifetime) * time.Second)
}

// IsExpired reports whether the token's expiration instant is at or before now.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt())
}

// ValidFrom returns the not-before instant, defaulting to the creation time.
func (t *Token) ValidFrom() time.Time {
	if t.NotBefore.IsZero() {
		return t.CreationTime
	}
	return t.NotBefore
}

// ToClaims returns the claim view of the token: aud, iss, nbf and exp first,
// followed by client_id, sub, one scope claim per granted scope and any
// additional claims.
func (t *Token) ToClaims() []Claim {
	claims := make([]Claim, 0, 6+len(t.Scopes)+len(t.Claims))
	claims = append(claims,
		Claim{Type: ClaimAudience, Value: t.Audience},
		Claim{Type: ClaimIssuer, Value: t.Issuer},
		Claim{Type: ClaimNotBefore, Value: unixString(t.ValidFrom())},
		Claim{Type: ClaimExpiration, Value: unixString(t.ExpiresAt())},
		Claim{Type: ClaimClientID, Value: t.ClientID},
	)
	if t.Subject != "" {
		claims = append(claims, Claim{Type: ClaimSubject, Value: t.Subject})
	}
	for _, scope := range t.Scopes {
		claims = append(claims, Claim{Type: ClaimScope, Value: scope})
	}
	return append(claims, t.Claims...)
}

func unixString(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ReferenceToken is the database row backing a reference token handle.
type ReferenceToken struct {
	Handle    string    `gorm:"primaryKey"`
	ClientID  string    `gorm:"not null;index"`
	Subject   string    `gorm:"index"`
	Payload   string    `gorm:"type:text;not null"` // JSON-encoded Token
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName overrides the table name used by ReferenceToken to `reference_tokens`
func (ReferenceToken) TableName() string {
	return "reference_tokens"
}

// NewReferenceToken encodes a token record for persistence under handle.
func NewReferenceToken(handle string, t *Token) (*ReferenceToken, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return &ReferenceToken{
		Handle:    handle,
		ClientID:  t.ClientID,
		Subject:   t.Subject,
		Payload:   string(payload),
		ExpiresAt: t.ExpiresAt(),
	}, nil
}

// Token decodes the persisted token record.
func (r *ReferenceToken) Token() (*Token, error) {
	var t Token
	if err := json.Unmarshal([]byte(r.Payload), &t); err != nil {
		return nil, err
	}
	return &t, nil
}
