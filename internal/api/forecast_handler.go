package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
	"github.com/sales-forecast-api/internal/validation"
)

// ForecastHandler handles forecast value endpoints
type ForecastHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(services *service.Services, log zerolog.Logger) *ForecastHandler {
	return &ForecastHandler{
		services: services,
		log:      log.With().Str("handler", "forecast").Logger(),
	}
}

// List handles GET /api/forecast-values/:productCode
func (h *ForecastHandler) List(c *gin.Context) {
	values, err := h.services.Forecast.List(c.Request.Context(), c.Param("productCode"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, values)
}

// Upsert handles POST /api/forecast-values
func (h *ForecastHandler) Upsert(c *gin.Context) {
	var req validation.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd, err := validation.BuildUpsertCommand(&req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Forecast.Upsert(c.Request.Context(), cmd); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// History handles GET /api/forecast-values-history/:productCode
func (h *ForecastHandler) History(c *gin.Context) {
	entries, err := h.services.Forecast.History(c.Request.Context(), c.Param("productCode"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ApplyForecast handles POST /api/forecast-values/apply-forecast: it
// writes a generated 36-month forecast back through the store, one cell
// at a time, skipping months already realized.
func (h *ForecastHandler) ApplyForecast(c *gin.Context) {
	var req struct {
		ProductCode    string  `json:"productCodigo"`
		ForecastValues []int   `json:"forecast_values"`
		UserID         *int    `json:"userId"`
		Username       *string `json:"username"`
		UserFullName   *string `json:"userFullName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ProductCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productCodigo is required"})
		return
	}

	editor := models.Editor{
		UserID:   req.UserID,
		Username: req.Username,
		FullName: req.UserFullName,
	}

	updated, err := h.services.Forecast.Apply(c.Request.Context(), req.ProductCode, req.ForecastValues, editor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
