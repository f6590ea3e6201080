package token

import "errors"

var (
	// ErrMalformedToken indicates the token could not be decoded or its
	// signature could not be verified against any trusted key
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidToken indicates a well-formed, correctly signed token whose
	// claims are not acceptable (issuer, audience, lifetime)
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenGeneration indicates token signing failed
	ErrTokenGeneration = errors.New("failed to generate token")

	// ErrVerifierConfig indicates the verifier was constructed with an
	// unusable configuration
	ErrVerifierConfig = errors.New("invalid verifier configuration")

	// Detail errors, always wrapped together with ErrMalformedToken or
	// ErrInvalidToken. Callers that must not leak the cause only test the
	// outer sentinel.

	ErrUndecodable      = errors.New("token is not decodable")
	ErrBadSignature     = errors.New("signature verification failed")
	ErrNoMatchingKey    = errors.New("no trusted key matches token")
	ErrIssuerMismatch   = errors.New("issuer mismatch")
	ErrAudienceMismatch = errors.New("audience mismatch")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrMissingExpiry    = errors.New("token has no expiration")
)
