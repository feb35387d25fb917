package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
)

// AIHandler handles the completion forecast proxy endpoint
type AIHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(services *service.Services, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		services: services,
		log:      log.With().Str("handler", "ai").Logger(),
	}
}

// GenerateForecast handles POST /api/deepseek-proxy/forecast
func (h *AIHandler) GenerateForecast(c *gin.Context) {
	var req models.AIForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.log.Info().
		Str("product", req.Data.ProductCode).
		Int("sales_lines", len(req.Data.HistoricalSales)).
		Msg("Generating forecast via completion proxy")

	envelope, err := h.services.AI.Generate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}
