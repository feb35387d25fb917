package repository

import (
	"context"
	"time"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	List(ctx context.Context) ([]models.ProductSummary, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
}

// GroupRepository defines the interface for period-type group lookups
type GroupRepository interface {
	List(ctx context.Context) ([]models.Group, error)
	ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error)
}

// SaleRepository defines the interface for historical sales reads
type SaleRepository interface {
	ListByProduct(ctx context.Context, productCode string) ([]models.Sale, error)
}

// ForecastRepository defines the interface for forecast value storage.
// UpsertAndLog runs the read-upsert-append sequence in one transaction
// and returns the value that was current before the call (nil when the
// key had no row yet).
type ForecastRepository interface {
	ListByProduct(ctx context.Context, productCode string) ([]models.ForecastValue, error)
	UpsertAndLog(ctx context.Context, cmd models.UpsertCommand, modifiedAt time.Time) (*float64, error)
	History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error)
}

// UserRepository defines the interface for account lookups
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Product  ProductRepository
	Group    GroupRepository
	Sale     SaleRepository
	Forecast ForecastRepository
	User     UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Product:  NewProductRepo(db),
		Group:    NewGroupRepo(db),
		Sale:     NewSaleRepo(db),
		Forecast: NewForecastRepo(db),
		User:     NewUserRepo(db),
	}
}
