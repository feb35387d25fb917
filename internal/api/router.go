package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/config"
	"github.com/sales-forecast-api/internal/presence"
	"github.com/sales-forecast-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, tracker *presence.Tracker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Accept", "X-Requested-With"},
		MaxAge:          12 * time.Hour,
	}))

	// Handlers
	authHandler := NewAuthHandler(services, log)
	productHandler := NewProductHandler(services, log)
	forecastHandler := NewForecastHandler(services, log)
	presenceHandler := NewPresenceHandler(tracker, log)
	aiHandler := NewAIHandler(services, log)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		api.POST("/presence/update", presenceHandler.Update)
		api.GET("/presence/users", presenceHandler.ListActive)

		api.POST("/auth/login", authHandler.Login)

		api.GET("/produtos", productHandler.List)
		api.GET("/produtos/:produto", productHandler.GetByName)
		api.GET("/grupos", productHandler.ListGroups)
		api.GET("/month-configurations", productHandler.ListMonthConfigurations)
		api.GET("/vendas/:productCode", productHandler.ListSales)

		api.GET("/forecast-values/:productCode", forecastHandler.List)
		api.POST("/forecast-values", forecastHandler.Upsert)
		api.POST("/forecast-values/apply-forecast", forecastHandler.ApplyForecast)
		api.GET("/forecast-values-history/:productCode", forecastHandler.History)

		api.POST("/deepseek-proxy/forecast", aiHandler.GenerateForecast)
	}

	// Unmatched /api/* paths return a JSON 404; anything else falls
	// back to the SPA entry file
	router.NoRoute(spaFallback(cfg.Server.StaticDir))

	return router
}

// healthCheck is the plain-text liveness probe
func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// spaFallback serves static assets from the dist dir and falls back to
// index.html for client-side routes
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
			return
		}

		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}

		path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}

// requestIDMiddleware tags every request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}
