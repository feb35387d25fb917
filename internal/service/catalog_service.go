package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/repository"
)

// catalogService is the concrete implementation of CatalogService
type catalogService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewCatalogService creates the read-side catalog service
func NewCatalogService(repos *repository.Repositories, log zerolog.Logger) CatalogService {
	return &catalogService{
		repos: repos,
		log:   log.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts returns the fixed column projection of every product
func (s *catalogService) ListProducts(ctx context.Context) ([]models.ProductSummary, error) {
	return s.repos.Product.List(ctx)
}

// GetProduct returns a single product by exact name match
func (s *catalogService) GetProduct(ctx context.Context, name string) (*models.Product, error) {
	product, err := s.repos.Product.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, models.NewNotFoundError("product %q not found", name)
	}
	return product, nil
}

// ListGroups returns all period-type groups ordered by year and type id
func (s *catalogService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.repos.Group.List(ctx)
}

// ListMonthConfigurations returns every month realization flag
func (s *catalogService) ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error) {
	return s.repos.Group.ListMonthConfigurations(ctx)
}

// ListSales returns the historical sales for a product ordered by date.
// A product with zero sales rows is reported as not found; the client
// treats it as a new product with no history.
func (s *catalogService) ListSales(ctx context.Context, productCode string) ([]models.Sale, error) {
	sales, err := s.repos.Sale.ListByProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, models.NewNotFoundError("no sales data found for product %q", productCode)
	}
	return sales, nil
}
