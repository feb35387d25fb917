package mocks

import (
	"context"

	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	Products []models.ProductSummary
	ByName   map[string]*models.Product
	Groups   []models.Group
	Configs  []models.MonthConfiguration
	Sales    map[string][]models.Sale
	Err      error
}

func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{
		ByName: make(map[string]*models.Product),
		Sales:  make(map[string][]models.Sale),
	}
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]models.ProductSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Products, nil
}

func (m *MockCatalogService) GetProduct(ctx context.Context, name string) (*models.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.ByName[name]; ok {
		return p, nil
	}
	return nil, models.NewNotFoundError("product %q not found", name)
}

func (m *MockCatalogService) ListGroups(ctx context.Context) ([]models.Group, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Groups, nil
}

func (m *MockCatalogService) ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Configs, nil
}

func (m *MockCatalogService) ListSales(ctx context.Context, productCode string) ([]models.Sale, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	sales := m.Sales[productCode]
	if len(sales) == 0 {
		return nil, models.NewNotFoundError("no sales data found for product %q", productCode)
	}
	return sales, nil
}

// MockForecastService is a mock implementation of ForecastService
type MockForecastService struct {
	Values    map[string][]models.ForecastValue
	Entries   map[string][]models.ForecastLogEntry
	Upserts   []models.UpsertCommand
	Applied   int
	ApplyErr  error
	UpsertErr error
	Err       error
}

func NewMockForecastService() *MockForecastService {
	return &MockForecastService{
		Values:  make(map[string][]models.ForecastValue),
		Entries: make(map[string][]models.ForecastLogEntry),
	}
}

func (m *MockForecastService) List(ctx context.Context, productCode string) ([]models.ForecastValue, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	values := m.Values[productCode]
	if values == nil {
		values = []models.ForecastValue{}
	}
	return values, nil
}

func (m *MockForecastService) Upsert(ctx context.Context, cmd models.UpsertCommand) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserts = append(m.Upserts, cmd)
	return nil
}

func (m *MockForecastService) History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	entries := m.Entries[productCode]
	if entries == nil {
		entries = []models.ForecastLogEntry{}
	}
	return entries, nil
}

func (m *MockForecastService) Apply(ctx context.Context, productCode string, values []int, editor models.Editor) (int, error) {
	if m.ApplyErr != nil {
		return 0, m.ApplyErr
	}
	m.Applied++
	return len(values), nil
}

// MockAIService is a mock implementation of AIService
type MockAIService struct {
	Envelope *models.ForecastEnvelope
	Err      error
	Requests []*models.AIForecastRequest
}

func NewMockAIService() *MockAIService {
	return &MockAIService{}
}

func (m *MockAIService) Generate(ctx context.Context, req *models.AIForecastRequest) (*models.ForecastEnvelope, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Envelope, nil
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	Passwords map[string]string
	Profiles  map[string]models.Profile
	Err       error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Passwords: make(map[string]string),
		Profiles:  make(map[string]models.Profile),
	}
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Passwords[username] != password {
		return nil, service.ErrInvalidCredentials
	}
	profile := m.Profiles[username]
	return &profile, nil
}
