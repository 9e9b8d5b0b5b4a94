// Package handler wires HTTP requests to services and maps domain errors
// onto status codes.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeConstraintViolation:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeEmptyCart,
		model.ErrCodeInsufficientStock,
		model.ErrCodeProductUnavailable,
		model.ErrCodeInvalidStatus,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as a JSON response. Domain errors keep
// their code and message; anything else is logged and reported as a
// generic internal error.
func respondError(c *gin.Context, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusFor(domainErr.Code), model.ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	c.JSON(http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Internal server error",
	})
}

// respondInvalid writes a 400 for a malformed request body or parameter.
func respondInvalid(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error:   model.ErrCodeInvalidJSON,
		Message: message,
	})
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondInvalid(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
