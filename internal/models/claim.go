package models

// Claim types used by the validator. Additional claims carried by a token are
// passed through unchanged.
const (
	ClaimAudience   = "aud"
	ClaimIssuer     = "iss"
	ClaimNotBefore  = "nbf"
	ClaimExpiration = "exp"
	ClaimIssuedAt   = "iat"
	ClaimJWTID      = "jti"
	ClaimClientID   = "client_id"
	ClaimSubject    = "sub"
	ClaimScope      = "scope"
)

// Claim is a single (type, value) assertion extracted from a token.
type Claim struct {
	Type  string `json:"type"  yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// FindClaim returns the value of the first claim of the given type.
func FindClaim(claims []Claim, claimType string) (string, bool) {
	for _, c := range claims {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

// FindClaims returns the values of all claims of the given type, in order.
func FindClaims(claims []Claim, claimType string) []string {
	var values []string
	for _, c := range claims {
		if c.Type == claimType {
			values = append(values, c.Value)
		}
	}
	return values
}

// ClaimsToMap groups claims by type. A type that occurs once maps to its
// string value; a repeated type maps to a []string in claim order.
func ClaimsToMap(claims []Claim) map[string]any {
	out := make(map[string]any, len(claims))
	for _, c := range claims {
		switch existing := out[c.Type].(type) {
		case nil:
			out[c.Type] = c.Value
		case string:
			out[c.Type] = []string{existing, c.Value}
		case []string:
			out[c.Type] = append(existing, c.Value)
		}
	}
	return out
}
