package handlers

import (
	"errors"
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/services"
	apperrors "github.com/getmentor/mentorlink-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
// so the observability middleware can include the reason in the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps a service error onto its HTTP status.
// Unclassified errors become a 500 with the fallback message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		respondError(c, status, fallback, err)
		return
	}
	respondError(c, status, err.Error(), err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondBindError renders request binding failures, with per-field details for validation errors
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(validationErrors), err)
		return
	}
	respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", gin.H{"message": err.Error()}, err)
}

// pathID reads a UUID path parameter; malformed ids cannot name a record
func pathID(c *gin.Context, name, resource string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusNotFound, resource+" not found", err)
		return "", false
	}
	return id, true
}
