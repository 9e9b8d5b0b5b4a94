package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/token"
)

// Context keys set by Authenticate.
const (
	ctxKeyUserID = "userID"
	ctxKeyRole   = "userRole"
)

// Authenticate verifies the Bearer access token and stores the caller's
// identity on the request context.
func Authenticate(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   model.ErrCodeInvalidCredentials,
				Message: "Missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   model.ErrCodeInvalidCredentials,
				Message: "Invalid authorization header",
			})
			return
		}

		claims, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   model.ErrCodeInvalidCredentials,
				Message: "Invalid or expired token",
			})
			return
		}

		SetIdentity(c, claims.UserID, claims.Role)
		c.Next()
	}
}

// SetIdentity stores the caller's identity on the request context. It is
// exposed for handler tests that bypass Authenticate.
func SetIdentity(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(ctxKeyUserID, userID)
	c.Set(ctxKeyRole, role)
}

// RequireRole rejects callers whose role does not match. It must run after
// Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
				Error:   model.ErrCodeForbidden,
				Message: fmt.Sprintf("Access denied: %s role required", role),
			})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id from the request context.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// Role returns the authenticated caller's role from the request context.
func Role(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error().
					Interface("panic", err).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
					Error:   model.ErrCodeInternalError,
					Message: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
