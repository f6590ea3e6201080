package middleware

import (
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/gin-gonic/gin"
)

const contextKeyValidationResult = "validation_result"

// ResultFromContext returns the validation result stored by RequireAccessToken.
func ResultFromContext(c *gin.Context) (*validation.Result, bool) {
	v, ok := c.Get(contextKeyValidationResult)
	if !ok {
		return nil, false
	}
	result, ok := v.(*validation.Result)
	return result, ok
}
