package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viaensino/via_ensino_app/internal/apperrors"
)

// respondError translates service errors into HTTP responses. The mapping is
// deliberately coarse: anything unrecognized is a 500 with a generic message
// so driver details never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrLastAdmin):
		c.JSON(http.StatusConflict, gin.H{"error": "Organization must retain at least one admin"})
	case errors.Is(err, apperrors.ErrOrganizationMismatch):
		c.JSON(http.StatusConflict, gin.H{"error": "Membership does not belong to this organization"})
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		c.JSON(http.StatusConflict, gin.H{"error": "User is already enrolled in this training"})
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "Lesson is already completed"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Page number out of range"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
