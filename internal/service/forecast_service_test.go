package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/mocks"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func timeNowYear() int { return time.Now().Year() }

func asValidation(err error, target **models.ValidationError) bool {
	return errors.As(err, target)
}

func newForecastService(forecasts *mocks.MockForecastRepository, groups *mocks.MockGroupRepository) service.ForecastService {
	return service.NewForecastService(forecasts, groups, zerolog.Nop())
}

func TestForecastService_UpsertTwiceKeepsOneRowAndTwoLogs(t *testing.T) {
	repo := mocks.NewMockForecastRepository()
	svc := newForecastService(repo, mocks.NewMockGroupRepository())

	cmd := models.UpsertCommand{
		ProductCode: "P001",
		Year:        2025,
		TypeID:      1,
		Month:       "JAN",
		Value:       100,
		Editor: models.Editor{
			UserID:   intPtr(1),
			Username: strPtr("admin"),
			FullName: strPtr("Administrador"),
		},
		Method: models.MethodUser,
	}

	if err := svc.Upsert(context.Background(), cmd); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	cmd.Value = 150
	if err := svc.Upsert(context.Background(), cmd); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	// Exactly one row for the key, holding the latest value
	if len(repo.Values) != 1 {
		t.Fatalf("expected 1 forecast row, got %d", len(repo.Values))
	}
	for _, v := range repo.Values {
		if v.Value != 150 {
			t.Errorf("expected latest value 150, got %v", v.Value)
		}
	}

	// Two log rows, one per call, each recording the value before that call
	if len(repo.Logs) != 2 {
		t.Fatalf("expected 2 log rows, got %d", len(repo.Logs))
	}
	if repo.Logs[0].PreviousValue != nil {
		t.Errorf("first log should have nil previous value, got %v", *repo.Logs[0].PreviousValue)
	}
	if repo.Logs[0].NewValue != 100 {
		t.Errorf("first log new value: expected 100, got %v", repo.Logs[0].NewValue)
	}
	if repo.Logs[1].PreviousValue == nil || *repo.Logs[1].PreviousValue != 100 {
		t.Errorf("second log previous value: expected 100, got %v", repo.Logs[1].PreviousValue)
	}
	if repo.Logs[1].NewValue != 150 {
		t.Errorf("second log new value: expected 150, got %v", repo.Logs[1].NewValue)
	}
}

func TestForecastService_UpsertDifferentKeysKeepSeparateRows(t *testing.T) {
	repo := mocks.NewMockForecastRepository()
	svc := newForecastService(repo, mocks.NewMockGroupRepository())

	base := models.UpsertCommand{ProductCode: "P001", Year: 2025, TypeID: 1, Value: 10, Method: models.MethodUser}
	for _, month := range []string{"JAN", "FEV", "MAR"} {
		cmd := base
		cmd.Month = month
		if err := svc.Upsert(context.Background(), cmd); err != nil {
			t.Fatalf("upsert %s failed: %v", month, err)
		}
	}

	if len(repo.Values) != 3 {
		t.Errorf("expected 3 rows, got %d", len(repo.Values))
	}
	if len(repo.Logs) != 3 {
		t.Errorf("expected 3 log rows, got %d", len(repo.Logs))
	}
}

func TestForecastService_HistoryNewestFirst(t *testing.T) {
	repo := mocks.NewMockForecastRepository()
	svc := newForecastService(repo, mocks.NewMockGroupRepository())

	cmd := models.UpsertCommand{ProductCode: "P001", Year: 2025, TypeID: 1, Month: "JAN", Method: models.MethodUser}
	for _, value := range []float64{10, 20, 30} {
		cmd.Value = value
		if err := svc.Upsert(context.Background(), cmd); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	entries, err := svc.History(context.Background(), "P001")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].ModifiedAt.After(entries[i-1].ModifiedAt) {
			t.Errorf("history not ordered newest first at index %d", i)
		}
	}
}

func TestForecastService_ApplySkipsRealizedMonths(t *testing.T) {
	repo := mocks.NewMockForecastRepository()
	groups := mocks.NewMockGroupRepository()
	svc := newForecastService(repo, groups)

	// Build groups and configs around the real current year so the
	// write-back plan is non-empty regardless of when the test runs
	year := timeNowYear()
	groups.Groups = []models.Group{
		{Year: year, TypeID: 1, Type: "REVISÃO"},
		{Year: year, TypeID: models.ActualTypeID, Type: "REAL"},
		{Year: year + 1, TypeID: 1, Type: "REVISÃO"},
		{Year: year + 2, TypeID: 1, Type: "REVISÃO"},
	}
	for _, y := range []int{year, year + 1, year + 2} {
		for _, month := range models.Months {
			realized := y == year && month == "JAN"
			groups.Configs = append(groups.Configs, models.MonthConfiguration{Year: y, Month: month, Realized: realized})
		}
	}

	values := make([]int, models.ForecastHorizon)
	for i := range values {
		values[i] = i + 1
	}

	updated, err := svc.Apply(context.Background(), "P001", values, models.Editor{})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if updated != 35 {
		t.Errorf("expected 35 cells written (36 minus 1 realized), got %d", updated)
	}

	// Every write is tagged as AI-generated
	for _, v := range repo.Values {
		if v.Method != models.MethodAI {
			t.Errorf("expected AI method on %s/%d/%s, got %s", v.ProductCode, v.Year, v.Month, v.Method)
		}
		if v.Year == year && v.Month == "JAN" {
			t.Errorf("realized month JAN %d must not be written", year)
		}
	}
}

func TestForecastService_ApplyRejectsWrongLength(t *testing.T) {
	svc := newForecastService(mocks.NewMockForecastRepository(), mocks.NewMockGroupRepository())

	_, err := svc.Apply(context.Background(), "P001", []int{1, 2, 3}, models.Editor{})
	if err == nil {
		t.Fatal("expected error for wrong value count")
	}
	var validationErr *models.ValidationError
	if !asValidation(err, &validationErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
