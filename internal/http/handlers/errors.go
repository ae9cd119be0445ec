package handlers

import (
	"net/http"

	"rideapp/internal/domain"
	"rideapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error": message,
		"code":  code,
	}
	if details != nil {
		if err, ok := details.(error); ok {
			payload["details"] = err.Error()
		} else {
			payload["details"] = details
		}
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		payload["request_id"] = reqID
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Validation
// failures carry the missing field names so the client can surface a
// field-specific notice.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"fields": domain.ValidationFields(err)})
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
