package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Kind is the shape of a bearer token.
type Kind int

const (
	// KindReference is an opaque handle resolved through a token store.
	KindReference Kind = iota
	// KindSelfContained is a signed compact JWT.
	KindSelfContained
)

func (k Kind) String() string {
	switch k {
	case KindSelfContained:
		return "jwt"
	default:
		return "reference"
	}
}

// Classify decides how raw must be validated. Anything carrying the compact
// serialization separator is attempted as a JWT, even when it is not a
// well-formed one; verification rejects it later. Everything else is a
// reference handle.
func Classify(raw string) Kind {
	if strings.Contains(raw, ".") {
		return KindSelfContained
	}
	return KindReference
}

// LooksLikeJWT reports whether raw is structurally a compact JWS: three
// segments, a decodable JSON header naming a known algorithm, a decodable
// JSON claim set and a non-empty signature. The signature is not checked.
func LooksLikeJWT(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[2] == "" {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	return err == nil
}
