package validation

import (
	"github.com/go-authgate/tokenguard/internal/models"
)

// ErrorCode is the externally visible reason a token was rejected.
type ErrorCode string

const (
	ErrorInvalidToken      ErrorCode = "invalid_token"
	ErrorExpiredToken      ErrorCode = "expired_token"
	ErrorInsufficientScope ErrorCode = "insufficient_scope"
)

// Reason is the internal cause behind an ErrorCode. It is meant for logs and
// metrics only and must not cross the trust boundary.
type Reason string

const (
	ReasonEmptyToken        Reason = "empty_token"
	ReasonUnknownHandle     Reason = "unknown_handle"
	ReasonReferenceExpired  Reason = "reference_expired"
	ReasonWrongTokenType    Reason = "wrong_token_type"
	ReasonMalformed         Reason = "malformed"
	ReasonBadSignature      Reason = "bad_signature"
	ReasonIssuerMismatch    Reason = "issuer_mismatch"
	ReasonAudienceMismatch  Reason = "audience_mismatch"
	ReasonJWTExpired        Reason = "jwt_expired"
	ReasonNotYetValid       Reason = "not_yet_valid"
	ReasonMissingClientID   Reason = "missing_client_id"
	ReasonClientUnknown     Reason = "client_unknown"
	ReasonClientInactive    Reason = "client_inactive"
	ReasonUserInactive      Reason = "user_inactive"
	ReasonScopeMissing      Reason = "scope_missing"
	ReasonVerifierMissing   Reason = "verifier_not_configured"
	ReasonTokenStoreMissing Reason = "token_store_not_configured"
)

// Result is the outcome of one validation. A successful result carries
// either JWT or ReferenceToken, never both, and always a Client. Error
// results carry no claims.
type Result struct {
	Claims           []models.Claim
	JWT              string
	ReferenceToken   *models.Token
	ReferenceTokenID string
	Client           *models.Client

	IsError bool
	Error   ErrorCode

	reason Reason
}

func failure(code ErrorCode, reason Reason) *Result {
	return &Result{IsError: true, Error: code, reason: reason}
}

// Reason returns the internal cause of a failed validation, or "" on success.
func (r *Result) Reason() Reason {
	return r.reason
}

// ClaimValue returns the first value of the claim type.
func (r *Result) ClaimValue(claimType string) (string, bool) {
	return models.FindClaim(r.Claims, claimType)
}

// ClaimValues returns every value of the claim type in order.
func (r *Result) ClaimValues(claimType string) []string {
	return models.FindClaims(r.Claims, claimType)
}

// Scopes returns the granted scopes.
func (r *Result) Scopes() []string {
	return r.ClaimValues(models.ClaimScope)
}

// Subject returns the sub claim, empty for client-only tokens.
func (r *Result) Subject() string {
	sub, _ := r.ClaimValue(models.ClaimSubject)
	return sub
}
