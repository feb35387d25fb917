package repository

import (
	"context"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// groupRepo is the concrete implementation of GroupRepository
type groupRepo struct {
	db *database.DB
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db *database.DB) GroupRepository {
	return &groupRepo{db: db}
}

// List retrieves all period-type groups ordered by year then type id
func (r *groupRepo) List(ctx context.Context) ([]models.Group, error) {
	query := `SELECT ano, id_tipo, tipo, code FROM grupos ORDER BY ano, id_tipo`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.DatabaseError{Op: "grupos.list", Err: err}
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.Year, &g.TypeID, &g.Type, &g.Code); err != nil {
			return nil, &models.DatabaseError{Op: "grupos.list", Err: err}
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "grupos.list", Err: err}
	}
	return groups, nil
}

// ListMonthConfigurations retrieves every month realization flag
func (r *groupRepo) ListMonthConfigurations(ctx context.Context) ([]models.MonthConfiguration, error) {
	query := `SELECT ano, mes, realizado FROM month_configurations ORDER BY ano, mes`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.DatabaseError{Op: "month_configurations.list", Err: err}
	}
	defer rows.Close()

	configs := []models.MonthConfiguration{}
	for rows.Next() {
		var mc models.MonthConfiguration
		if err := rows.Scan(&mc.Year, &mc.Month, &mc.Realized); err != nil {
			return nil, &models.DatabaseError{Op: "month_configurations.list", Err: err}
		}
		configs = append(configs, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "month_configurations.list", Err: err}
	}
	return configs, nil
}
