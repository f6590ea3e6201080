package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/gin-gonic/gin"
)

// Realm is advertised in WWW-Authenticate challenges.
const Realm = "tokenguard"

// AccessTokenValidator is satisfied by *validation.Validator.
type AccessTokenValidator interface {
	ValidateAccessToken(
		ctx context.Context,
		raw, requiredScope string,
	) (*validation.Result, error)
}

// BearerToken extracts the token from an RFC 6750 Authorization header.
// The scheme is matched case-insensitively.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAccessToken rejects requests without a valid access token carrying
// requiredScope. An empty requiredScope skips the scope check. On success the
// result is available through ResultFromContext.
func RequireAccessToken(v AccessTokenValidator, requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := BearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", fmt.Sprintf(`Bearer realm=%q`, Realm))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":             "invalid_request",
				"error_description": "Bearer token required",
			})
			return
		}

		result, err := v.ValidateAccessToken(c.Request.Context(), raw, requiredScope)
		if err != nil {
			status := http.StatusServiceUnavailable
			if !errors.Is(err, validation.ErrInfrastructure) {
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error": "temporarily_unavailable",
			})
			return
		}

		if result.IsError {
			abortWithTokenError(c, result.Error, requiredScope)
			return
		}

		c.Set(contextKeyValidationResult, result)
		c.Next()
	}
}

func abortWithTokenError(c *gin.Context, code validation.ErrorCode, requiredScope string) {
	status := http.StatusUnauthorized
	challenge := fmt.Sprintf(`Bearer realm=%q, error=%q`, Realm, string(code))
	if code == validation.ErrorInsufficientScope {
		status = http.StatusForbidden
		challenge += fmt.Sprintf(`, scope=%q`, requiredScope)
	}

	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(status, gin.H{"error": string(code)})
}
