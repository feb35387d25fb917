package models

// ForecastHorizon is the fixed number of future months the completion
// endpoint is asked to predict
const ForecastHorizon = 36

// HistoricalSale is one sales line embedded into the completion prompt
type HistoricalSale struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Customer string  `json:"customer,omitempty"`
	Invoice  string  `json:"invoice,omitempty"`
	Seller   string  `json:"seller,omitempty"`
}

// AIForecastData is the payload forwarded through the proxy
type AIForecastData struct {
	ProductCode     string           `json:"product_code"`
	ProductName     string           `json:"product_name"`
	HistoricalSales []HistoricalSale `json:"historical_sales"`
	ForecastMonths  int              `json:"forecast_months,omitempty"`
}

/// AIForecastRequest is the proxy request body: the caller's API key
// plus the data forwarded upstream
type AIForecastRequest struct {
	APIKey string         `json:"apiKey"`
	Data   AIForecastData `json:"data"`
}

// ConfidenceIntervals is the naive ±20% band around each forecast value
type ConfidenceIntervals struct {
	Lower []int `json:"lower"`
	Upper []int `json:"upper"`
}

// ModelInfo identifies the upstream model behind an envelope
type ModelInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ForecastMetrics carries the fixed placeholder accuracy figures; they
// are not computed from data
type ForecastMetrics struct {
	MAPE float64 `json:"mape"`
	RMSE float64 `json:"rmse"`
}

/// ForecastEnvelope is the proxy response: 36 monthly values with bands
// and model metadata
type ForecastEnvelope struct {
	ForecastValues      []int               `json:"forecast_values"`
	ConfidenceIntervals ConfidenceIntervals `json:"confidence_intervals"`
	ProductCode         string              `json:"product_code"`
	ModelInfo           ModelInfo           `json:"model_info"`
	Metrics             ForecastMetrics     `json:"metrics"`
}
