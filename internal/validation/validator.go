// Package validation turns loosely-typed request bodies into typed
// command objects before any business logic runs. Malformed input is
// rejected here with a ValidationError instead of propagating nil
// fields downstream.
package validation

import (
	"strings"

	"github.com/sales-forecast-api/internal/models"
)

// UpsertRequest is the raw body of POST /api/forecast-values. Required
// fields are pointers so that absent and zero-valued input can be told
// apart (a forecast of 0 is legal).
type UpsertRequest struct {
	ProductCode  *string  `json:"productCodigo"`
	Year         *int     `json:"ano"`
	TypeID       *int     `json:"id_tipo"`
	Month        *string  `json:"mes"`
	Value        *float64 `json:"valor"`
	UserID       *int     `json:"userId"`
	Username     *string  `json:"username"`
	UserFullName *string  `json:"userFullName"`
	Method       string   `json:"metodo"`
}

// BuildUpsertCommand validates an upsert request and produces the
// command consumed by the forecast value store
func BuildUpsertCommand(req *UpsertRequest) (models.UpsertCommand, error) {
	var cmd models.UpsertCommand

	if req.ProductCode == nil || strings.TrimSpace(*req.ProductCode) == "" {
		return cmd, models.NewValidationError("productCodigo is required")
	}
	if req.Year == nil {
		return cmd, models.NewValidationError("ano is required")
	}
	if req.TypeID == nil {
		return cmd, models.NewValidationError("id_tipo is required")
	}
	if req.Month == nil {
		return cmd, models.NewValidationError("mes is required")
	}
	if req.Value == nil {
		return cmd, models.NewValidationError("valor is required")
	}

	month := strings.ToUpper(strings.TrimSpace(*req.Month))
	if !models.ValidMonth(month) {
		return cmd, models.NewValidationError("mes must be one of %s", strings.Join(models.Months, ", "))
	}

	method := models.ForecastMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	switch method {
	case "":
		method = models.MethodUser
	case models.MethodUser, models.MethodAI:
	default:
		return cmd, models.NewValidationError("metodo must be USER or AI")
	}

	cmd = models.UpsertCommand{
		ProductCode: strings.TrimSpace(*req.ProductCode),
		Year:        *req.Year,
		TypeID:      *req.TypeID,
		Month:       month,
		Value:       *req.Value,
		Editor: models.Editor{
			UserID:   req.UserID,
			Username: req.Username,
			FullName: req.UserFullName,
		},
		Method: method,
	}
	return cmd, nil
}

// ValidateForecastRequest checks the AI proxy request before it is
// forwarded upstream
func ValidateForecastRequest(req *models.AIForecastRequest) error {
	if req.APIKey == "" {
		return models.NewValidationError("apiKey is required")
	}
	if req.Data.ProductCode == "" {
		return models.NewValidationError("product_code is required")
	}
	if len(req.Data.HistoricalSales) == 0 {
		return models.NewValidationError("no historical sales data available for this product")
	}
	return nil
}
