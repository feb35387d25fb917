package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sales-forecast-api/internal/models"
)

func forecastKey(productCode string, year, typeID int, month string) string {
	return fmt.Sprintf("%s|%d|%d|%s", productCode, year, typeID, month)
}

// MockForecastRepository is an in-memory implementation of
// ForecastRepository. UpsertAndLog mirrors the real transaction: one
// row per key, one log entry per call.
type MockForecastRepository struct {
	Values map[string]*models.ForecastValue
	Logs   []models.ForecastLogEntry
	Err    error
}

func NewMockForecastRepository() *MockForecastRepository {
	return &MockForecastRepository{
		Values: make(map[string]*models.ForecastValue),
	}
}

func (m *MockForecastRepository) ListByProduct(ctx context.Context, productCode string) ([]models.ForecastValue, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	values := []models.ForecastValue{}
	for _, v := range m.Values {
		if v.ProductCode == productCode {
			values = append(values, *v)
		}
	}
	return values, nil
}

func (m *MockForecastRepository) UpsertAndLog(ctx context.Context, cmd models.UpsertCommand, modifiedAt time.Time) (*float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	key := forecastKey(cmd.ProductCode, cmd.Year, cmd.TypeID, cmd.Month)

	var previous *float64
	if existing, ok := m.Values[key]; ok {
		prev := existing.Value
		previous = &prev
	}

	m.Values[key] = &models.ForecastValue{
		ProductCode:  cmd.ProductCode,
		Year:         cmd.Year,
		TypeID:       cmd.TypeID,
		Month:        cmd.Month,
		Value:        cmd.Value,
		UserID:       cmd.Editor.UserID,
		Username:     cmd.Editor.Username,
		UserFullName: cmd.Editor.FullName,
		ModifiedAt:   modifiedAt,
		Method:       cmd.Method,
	}

	m.Logs = append(m.Logs, models.ForecastLogEntry{
		ID:            int64(len(m.Logs) + 1),
		ProductCode:   cmd.ProductCode,
		Year:          cmd.Year,
		TypeID:        cmd.TypeID,
		Month:         cmd.Month,
		PreviousValue: previous,
		NewValue:      cmd.Value,
		UserID:        cmd.Editor.UserID,
		Username:      cmd.Editor.Username,
		UserFullName:  cmd.Editor.FullName,
		ModifiedAt:    modifiedAt,
	})

	return previous, nil
}

func (m *MockForecastRepository) History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	entries := []models.ForecastLogEntry{}
	for _, e := range m.Logs {
		if e.ProductCode == productCode {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ModifiedAt.After(entries[j].ModifiedAt)
	})
	return entries, nil
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	Groups  []models.Group
	Configs []models.MonthConfiguration
	Err     error
}

func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{}
}

func (m *MockGroupRepository) List(ctx context.Context) ([]models.Group, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Groups, nil
}

func (m *MockGroupRepository) ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Configs, nil
}

// MockSaleRepository is a mock implementation of SaleRepository
type MockSaleRepository struct {
	Sales map[string][]models.Sale
	Err   error
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		Sales: make(map[string][]models.Sale),
	}
}

func (m *MockSaleRepository) ListByProduct(ctx context.Context, productCode string) ([]models.Sale, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sales[productCode], nil
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	Products []models.ProductSummary
	ByName   map[string]*models.Product
	Err      error
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		ByName: make(map[string]*models.Product),
	}
}

func (m *MockProductRepository) List(ctx context.Context) ([]models.ProductSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Products, nil
}

func (m *MockProductRepository) GetByName(ctx context.Context, name string) (*models.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ByName[name], nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users      map[string]*models.User
	LastLogins map[int]time.Time
	Err        error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[string]*models.User),
		LastLogins: make(map[int]time.Time),
	}
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[username], nil
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id int) error {
	if m.Err != nil {
		return m.Err
	}
	m.LastLogins[id] = time.Now()
	return nil
}
