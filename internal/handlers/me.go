package handlers

import (
	"net/http"

	"github.com/go-authgate/tokenguard/internal/middleware"
	"github.com/go-authgate/tokenguard/internal/models"

	"github.com/gin-gonic/gin"
)

type meResponse struct {
	Subject   string         `json:"sub,omitempty"`
	ClientID  string         `json:"client_id"`
	Scopes    []string       `json:"scopes"`
	TokenType string         `json:"token_type"`
	Claims    map[string]any `json:"claims"`
}

// Me godoc
//
//	@Summary		Describe the caller
//	@Description	Echoes the validated access token of the request. Requires a bearer token.
//	@Tags			Demo
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	meResponse
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Router			/api/me [get]
func Me(c *gin.Context) {
	result, ok := middleware.ResultFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	tokenType := "jwt"
	if result.ReferenceToken != nil {
		tokenType = "reference"
	}

	c.JSON(http.StatusOK, meResponse{
		Subject:   result.Subject(),
		ClientID:  result.Client.ClientID,
		Scopes:    result.Scopes(),
		TokenType: tokenType,
		Claims:    models.ClaimsToMap(result.Claims),
	})
}
