package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmedarov/villageride/internal/repository"
	"github.com/dmedarov/villageride/internal/service"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the accumulated field errors of a
// rejected submission, keyed by field name.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var fieldErrs service.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Невалидни данни.",
			Details: fieldErrs,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Невалидни данни за вход."})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		// Persistence faults and everything else: generic failure, no
		// internals leaked.
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
