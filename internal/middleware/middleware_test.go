package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/config"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/token"
)

func newTestRouter(tokens *token.Manager, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := []gin.HandlerFunc{Authenticate(tokens)}
	if adminOnly {
		handlers = append(handlers, RequireRole(model.RoleAdmin))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserID(c).String(),
			"role":   Role(c),
		})
	})

	r.GET("/protected", handlers...)
	return r
}

func newTestManager() *token.Manager {
	return token.NewManager(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := newTestManager()
	userID := uuid.New()

	access, err := tokens.GenerateAccessToken(userID, model.RoleCustomer)
	require.NoError(t, err)

	refresh, err := tokens.GenerateRefreshToken(userID, model.RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Valid token",
			authHeader: "Bearer " + access,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Not a bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Refresh token rejected on access paths",
			authHeader: "Bearer " + refresh,
			wantStatus: http.StatusUnauthorized,
		},
	}

	router := newTestRouter(tokens, false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	expired := token.NewManager(config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    time.Hour,
	})

	access, err := expired.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	router := newTestRouter(newTestManager(), false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := newTestManager()

	adminToken, err := tokens.GenerateAccessToken(uuid.New(), model.RoleAdmin)
	require.NoError(t, err)

	customerToken, err := tokens.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	router := newTestRouter(tokens, true)

	t.Run("Admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Customer forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+customerToken)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
