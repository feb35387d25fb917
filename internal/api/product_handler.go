package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/service"
)

// ProductHandler handles product, group, month-configuration and sales
// read endpoints
type ProductHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(services *service.Services, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		services: services,
		log:      log.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/produtos
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.services.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByName handles GET /api/produtos/:produto
func (h *ProductHandler) GetByName(c *gin.Context) {
	product, err := h.services.Catalog.GetProduct(c.Request.Context(), c.Param("produto"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListGroups handles GET /api/grupos
func (h *ProductHandler) ListGroups(c *gin.Context) {
	groups, err := h.services.Catalog.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// ListMonthConfigurations handles GET /api/month-configurations
func (h *ProductHandler) ListMonthConfigurations(c *gin.Context) {
	configs, err := h.services.Catalog.ListMonthConfigurations(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, configs)
}

// ListSales handles GET /api/vendas/:productCode. A product with no
// sales history returns 404 so the client can tell a new product apart
// from an empty result.
func (h *ProductHandler) ListSales(c *gin.Context) {
	sales, err := h.services.Catalog.ListSales(c.Request.Context(), c.Param("productCode"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
