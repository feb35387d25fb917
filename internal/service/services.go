package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/config"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/repository"
)

// CatalogService defines the interface for product, group,
// month-configuration and sales reads
type CatalogService interface {
	ListProducts(ctx context.Context) ([]models.ProductSummary, error)
	GetProduct(ctx context.Context, name string) (*models.Product, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error)
	ListSales(ctx context.Context, productCode string) ([]models.Sale, error)
}

// ForecastService defines the interface for the forecast value store
type ForecastService interface {
	List(ctx context.Context, productCode string) ([]models.ForecastValue, error)
	Upsert(ctx context.Context, cmd models.UpsertCommand) error
	History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error)
	Apply(ctx context.Context, productCode string, values []int, editor models.Editor) (int, error)
}

// AIService defines the interface for the completion forecast proxy
type AIService interface {
	Generate(ctx context.Context, req *models.AIForecastRequest) (*models.ForecastEnvelope, error)
}

// AuthService defines the interface for credential checks
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Profile, error)
}

// Services holds all service interfaces
type Services struct {
	Catalog  CatalogService
	Forecast ForecastService
	AI       AIService
	Auth     AuthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Catalog:  NewCatalogService(repos, log),
		Forecast: NewForecastService(repos.Forecast, repos.Group, log),
		AI:       NewAIService(&cfg.AI, log),
		Auth:     NewAuthService(repos.User, log),
	}
}
