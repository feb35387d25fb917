package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
)

// respondError translates the error taxonomy into a JSON body with an
// error field and, for diagnostics, a details field carrying the
// underlying message. No structured error codes.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var upstreamErr *models.UpstreamError
	var parseErr *models.ResponseParseError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})

	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})

	case errors.As(err, &upstreamErr), errors.As(err, &parseErr):
		log.Error().Err(err).Msg("Forecast generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate forecast",
			"details": err.Error(),
		})

	default:
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}
