package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/grid"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/repository"
)

// forecastService is the concrete implementation of ForecastService
type forecastService struct {
	forecasts repository.ForecastRepository
	groups    repository.GroupRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewForecastService creates the forecast value store service
func NewForecastService(forecasts repository.ForecastRepository, groups repository.GroupRepository, log zerolog.Logger) ForecastService {
	return &forecastService{
		forecasts: forecasts,
		groups:    groups,
		log:       log.With().Str("service", "forecast").Logger(),
		now:       time.Now,
	}
}

// List returns all forecast value rows for a product
func (s *forecastService) List(ctx context.Context, productCode string) ([]models.ForecastValue, error) {
	return s.forecasts.ListByProduct(ctx, productCode)
}

// Upsert writes one forecast cell and appends its audit log entry.
// Concurrent edits to the same key are last-write-wins; both log rows
// are still recorded.
func (s *forecastService) Upsert(ctx context.Context, cmd models.UpsertCommand) error {
	previous, err := s.forecasts.UpsertAndLog(ctx, cmd, s.now())
	if err != nil {
		return err
	}

	event := s.log.Info().
		Str("product", cmd.ProductCode).
		Int("year", cmd.Year).
		Int("type_id", cmd.TypeID).
		Str("month", cmd.Month).
		Float64("value", cmd.Value).
		Str("method", string(cmd.Method))
	if previous != nil {
		event = event.Float64("previous", *previous)
	}
	event.Msg("Forecast value updated")
	return nil
}

// History returns the append-only change log for a product, newest first
func (s *forecastService) History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error) {
	return s.forecasts.History(ctx, productCode)
}

// Apply writes a 36-month generated forecast back through the store,
// one upsert per future, non-realized REVISÃO cell. Realized months are
// skipped; every write is tagged with the AI method. It returns the
// number of cells written.
func (s *forecastService) Apply(ctx context.Context, productCode string, values []int, editor models.Editor) (int, error) {
	if len(values) != models.ForecastHorizon {
		return 0, models.NewValidationError("expected %d forecast values, got %d", models.ForecastHorizon, len(values))
	}

	groups, err := s.groups.List(ctx)
	if err != nil {
		return 0, err
	}
	configs, err := s.groups.ListMonthConfigurations(ctx)
	if err != nil {
		return 0, err
	}

	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}

	currentYear := s.now().Year()
	writes := grid.PlanWriteback(floats, groups, configs, currentYear)
	if len(writes) == 0 {
		return 0, models.NewValidationError("no periods available for update; all months are already realized")
	}

	for _, w := range writes {
		cmd := models.UpsertCommand{
			ProductCode: productCode,
			Year:        w.Year,
			TypeID:      w.TypeID,
			Month:       w.Month,
			Value:       w.Value,
			Editor:      editor,
			Method:      models.MethodAI,
		}
		if err := s.Upsert(ctx, cmd); err != nil {
			return 0, err
		}
	}

	s.log.Info().
		Str("product", productCode).
		Int("cells", len(writes)).
		Msg("Applied generated forecast")
	return len(writes), nil
}
