package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-authgate/tokenguard/internal/models"
	"github.com/go-authgate/tokenguard/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	result *validation.Result
	err    error

	gotToken string
	gotScope string
}

func (s *stubValidator) ValidateAccessToken(
	_ context.Context,
	raw, requiredScope string,
) (*validation.Result, error) {
	s.gotToken = raw
	s.gotScope = requiredScope
	return s.result, s.err
}

func setupProtectedRouter(v AccessTokenValidator, scope string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders", RequireAccessToken(v, scope), func(c *gin.Context) {
		result, ok := ResultFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"client_id": result.Client.ClientID})
	})
	return r
}

func TestRequireAccessToken_Success(t *testing.T) {
	v := &stubValidator{result: &validation.Result{
		JWT:    "header.payload.sig",
		Client: &models.Client{ClientID: "roclient", IsActive: true},
		Claims: []models.Claim{{Type: models.ClaimClientID, Value: "roclient"}},
	}}
	r := setupProtectedRouter(v, "read")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer header.payload.sig")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"client_id":"roclient"}`, w.Body.String())
	assert.Equal(t, "header.payload.sig", v.gotToken)
	assert.Equal(t, "read", v.gotScope)
}

func TestRequireAccessToken_MissingCredentials(t *testing.T) {
	for _, header := range []string{"", "Basic dGVzdDp0ZXN0", "Bearer", "Bearer   "} {
		t.Run(fmt.Sprintf("header %q", header), func(t *testing.T) {
			v := &stubValidator{}
			r := setupProtectedRouter(v, "read")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, `Bearer realm="tokenguard"`, w.Header().Get("WWW-Authenticate"))
			assert.Contains(t, w.Body.String(), "invalid_request")
			assert.Empty(t, v.gotToken, "validator must not be called")
		})
	}
}

func TestRequireAccessToken_TokenErrors(t *testing.T) {
	tests := []struct {
		code          validation.ErrorCode
		wantStatus    int
		wantChallenge string
	}{
		{
			validation.ErrorInvalidToken,
			http.StatusUnauthorized,
			`Bearer realm="tokenguard", error="invalid_token"`,
		},
		{
			validation.ErrorExpiredToken,
			http.StatusUnauthorized,
			`Bearer realm="tokenguard", error="expired_token"`,
		},
		{
			validation.ErrorInsufficientScope,
			http.StatusForbidden,
			`Bearer realm="tokenguard", error="insufficient_scope", scope="read"`,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			v := &stubValidator{result: &validation.Result{IsError: true, Error: tt.code}}
			r := setupProtectedRouter(v, "read")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			req.Header.Set("Authorization", "bearer 123")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantChallenge, w.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.code), w.Body.String())
			assert.Equal(t, "123", v.gotToken)
		})
	}
}

func TestRequireAccessToken_InfrastructureError(t *testing.T) {
	v := &stubValidator{
		err: fmt.Errorf("%w: find client: %w", validation.ErrInfrastructure, errors.New("db down")),
	}
	r := setupProtectedRouter(v, "read")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer 123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), "temporarily_unavailable")
}

func TestResultFromContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	result, ok := ResultFromContext(c)
	require.False(t, ok)
	assert.Nil(t, result)
}
