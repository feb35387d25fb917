package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/api"
	"github.com/sales-forecast-api/internal/config"
	"github.com/sales-forecast-api/internal/mocks"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/presence"
	"github.com/sales-forecast-api/internal/service"
)

type testEnv struct {
	router   *gin.Engine
	catalog  *mocks.MockCatalogService
	forecast *mocks.MockForecastService
	ai       *mocks.MockAIService
	auth     *mocks.MockAuthService
	tracker  *presence.Tracker
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	catalog := mocks.NewMockCatalogService()
	forecast := mocks.NewMockForecastService()
	ai := mocks.NewMockAIService()
	auth := mocks.NewMockAuthService()

	services := &service.Services{
		Catalog:  catalog,
		Forecast: forecast,
		AI:       ai,
		Auth:     auth,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "3005", StaticDir: "/tmp/test-dist"},
	}

	tracker := presence.NewTracker(presence.DefaultTTL, zerolog.Nop())
	router := api.NewRouter(services, tracker, cfg, zerolog.Nop())

	return &testEnv{
		router:   router,
		catalog:  catalog,
		forecast: forecast,
		ai:       ai,
		auth:     auth,
		tracker:  tracker,
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := getJSON(env.router, "/api/health")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got %q", w.Body.String())
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	env := setupTestRouter()

	w := getJSON(env.router, "/api/does-not-exist")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "API route not found" {
		t.Errorf("Expected JSON 404 body, got %v", response)
	}
}

func TestListSales_OrderedHistory(t *testing.T) {
	env := setupTestRouter()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	env.catalog.Sales["P001"] = []models.Sale{
		{Code: "P001", Date: jan, Quantity: 10, Revenue: 120},
		{Code: "P001", Date: mar, Quantity: 7, Revenue: 84},
	}

	w := getJSON(env.router, "/api/vendas/P001")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var sales []models.Sale
	if err := json.Unmarshal(w.Body.Bytes(), &sales); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("Expected 2 sales, got %d", len(sales))
	}
	if !sales[0].Date.Before(sales[1].Date) {
		t.Errorf("Expected sales in chronological order, got %v then %v", sales[0].Date, sales[1].Date)
	}
}

func TestListSales_EmptyHistoryIs404(t *testing.T) {
	env := setupTestRouter()

	w := getJSON(env.router, "/api/vendas/UNKNOWN")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for product without sales, got %d", w.Code)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	env := setupTestRouter()

	w := getJSON(env.router, "/api/produtos/Nonexistent")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestLogin(t *testing.T) {
	env := setupTestRouter()
	env.auth.Passwords["admin"] = "secret123"
	env.auth.Profiles["admin"] = models.Profile{ID: 1, Username: "admin", FullName: "Administrator", Role: "admin"}

	t.Run("missing credentials", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/auth/login", map[string]string{"username": "admin"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/auth/login", map[string]string{
			"username": "admin",
			"password": "nope",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/auth/login", map[string]string{
			"username": "admin",
			"password": "secret123",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var profile models.Profile
		if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
			t.Fatalf("failed to decode profile: %v", err)
		}
		if profile.Username != "admin" || profile.Role != "admin" {
			t.Errorf("Unexpected profile: %+v", profile)
		}
	})
}

func TestUpsertForecastValue(t *testing.T) {
	env := setupTestRouter()

	t.Run("missing value", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/forecast-values", map[string]interface{}{
			"productCodigo": "P001",
			"ano":           2025,
			"id_tipo":       1,
			"mes":           "JAN",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("bad month", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/forecast-values", map[string]interface{}{
			"productCodigo": "P001",
			"ano":           2025,
			"id_tipo":       1,
			"mes":           "JANUARY",
			"valor":         100,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/forecast-values", map[string]interface{}{
			"productCodigo": "P001",
			"ano":           2025,
			"id_tipo":       1,
			"mes":           "jan",
			"valor":         150.0,
			"userId":        3,
			"username":      "admin",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		if response["success"] != true {
			t.Errorf("Expected success response, got %v", response)
		}

		if len(env.forecast.Upserts) != 1 {
			t.Fatalf("Expected 1 upsert, got %d", len(env.forecast.Upserts))
		}
		cmd := env.forecast.Upserts[0]
		if cmd.ProductCode != "P001" || cmd.Month != "JAN" || cmd.Value != 150 {
			t.Errorf("Unexpected upsert command: %+v", cmd)
		}
	})
}

func TestApplyForecast(t *testing.T) {
	env := setupTestRouter()

	t.Run("missing product code", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/forecast-values/apply-forecast", map[string]interface{}{
			"forecast_values": []int{1, 2, 3},
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		values := make([]int, 36)
		for i := range values {
			values[i] = i + 1
		}
		w := postJSON(t, env.router, "/api/forecast-values/apply-forecast", map[string]interface{}{
			"productCodigo":   "P001",
			"forecast_values": values,
			"userId":          3,
			"username":        "admin",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		if response["success"] != true || response["updated"] != float64(36) {
			t.Errorf("Unexpected response: %v", response)
		}
		if env.forecast.Applied != 1 {
			t.Errorf("Expected 1 apply call, got %d", env.forecast.Applied)
		}
	})
}

func TestGenerateForecastProxy(t *testing.T) {
	env := setupTestRouter()
	env.ai.Envelope = &models.ForecastEnvelope{
		ForecastValues: []int{10, 12, 14},
		ProductCode:    "P001",
		ModelInfo:      models.ModelInfo{Name: "deepseek_forecast_model", Version: "1.0.0"},
	}

	w := postJSON(t, env.router, "/api/deepseek-proxy/forecast", map[string]interface{}{
		"apiKey": "sk-test",
		"data": map[string]interface{}{
			"product_code": "P001",
			"historical_sales": []map[string]interface{}{
				{"date": "2024-01-01", "quantity": 10, "revenue": 120},
			},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope models.ForecastEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if envelope.ProductCode != "P001" || envelope.ModelInfo.Name != "deepseek_forecast_model" {
		t.Errorf("Unexpected envelope: %+v", envelope)
	}

	if len(env.ai.Requests) != 1 {
		t.Fatalf("Expected 1 proxy request, got %d", len(env.ai.Requests))
	}
	if env.ai.Requests[0].APIKey != "sk-test" {
		t.Errorf("API key not forwarded: %+v", env.ai.Requests[0])
	}
}

func TestPresenceRoundtrip(t *testing.T) {
	env := setupTestRouter()
	defer env.tracker.Stop()

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/presence/update", map[string]interface{}{
			"username": "admin",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("heartbeat then list", func(t *testing.T) {
		w := postJSON(t, env.router, "/api/presence/update", map[string]interface{}{
			"userId":   3,
			"username": "admin",
			"nome":     "Administrator",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		lw := getJSON(env.router, "/api/presence/users")
		if lw.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", lw.Code)
		}

		var users []map[string]interface{}
		if err := json.Unmarshal(lw.Body.Bytes(), &users); err != nil {
			t.Fatalf("failed to decode users: %v", err)
		}
		if len(users) != 1 {
			t.Fatalf("Expected 1 active user, got %d", len(users))
		}
		if users[0]["username"] != "admin" {
			t.Errorf("Unexpected user entry: %v", users[0])
		}
	})
}
