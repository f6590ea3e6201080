package handlers

import (
	"errors"
	"net/http"

	"github.com/go-authgate/tokenguard/internal/middleware"
	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/gin-gonic/gin"
)

// ValidationHandler exposes access token validation to resource servers
// that cannot validate tokens themselves.
type ValidationHandler struct {
	validator middleware.AccessTokenValidator
}

func NewValidationHandler(v middleware.AccessTokenValidator) *ValidationHandler {
	return &ValidationHandler{validator: v}
}

// AccessTokenValidation godoc
//
//	@Summary		Validate an access token
//	@Description	Returns the token claims as a JSON object. Claim types that occur more than once become arrays.
//	@Tags			Validation
//	@Produce		json
//	@Param			token			query		string				true	"Access token (JWT or reference handle)"
//	@Param			expectedScope	query		string				false	"Scope the token must carry"
//	@Success		200				{object}	map[string]any		"Token claims"
//	@Failure		400				{object}	map[string]string	"invalid_token, expired_token or insufficient_scope"
//	@Failure		503				{object}	map[string]string	"Backing store unavailable"
//	@Router			/connect/accesstokenvalidation [get]
func (h *ValidationHandler) AccessTokenValidation(c *gin.Context) {
	raw := c.Query("token")
	scope := c.Query("expectedScope")

	result, err := h.validator.ValidateAccessToken(c.Request.Context(), raw, scope)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validation.ErrInfrastructure) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "temporarily_unavailable"})
		return
	}

	if result.IsError {
		c.JSON(http.StatusBadRequest, gin.H{"error": string(result.Error)})
		return
	}

	c.JSON(http.StatusOK, models.ClaimsToMap(result.Claims))
}
