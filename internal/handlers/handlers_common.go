package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error to its HTTP response. ErrEmptyScope
// is a no-op success, not a failure, so it answers 200 with the message.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrEmptyScope):
		logger.Info("Nothing in scope for operation", slog.String("detail", err.Error()))
		c.JSON(http.StatusOK, gin.H{"message": "No eligible checks in scope, nothing to do"})
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		logger.Warn("Request not authenticated", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Actor lacks permission", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreRead):
		logger.Error("Store read failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Storage temporarily unavailable"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
