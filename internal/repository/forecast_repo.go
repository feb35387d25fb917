package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// forecastRepo is the concrete implementation of ForecastRepository
type forecastRepo struct {
	db *database.DB
}

// NewForecastRepo creates a new forecast value repository
func NewForecastRepo(db *database.DB) ForecastRepository {
	return &forecastRepo{db: db}
}

// ListByProduct retrieves every forecast value row for a product
func (r *forecastRepo) ListByProduct(ctx context.Context, productCode string) ([]models.ForecastValue, error) {
	query := `
		SELECT produto_codigo, ano, id_tipo, mes, valor,
		       user_id, username, user_fullname, modified_at, metodo
		FROM forecast_values
		WHERE produto_codigo = $1
	`

	rows, err := r.db.QueryContext(ctx, query, productCode)
	if err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.list", Err: err}
	}
	defer rows.Close()

	values := []models.ForecastValue{}
	for rows.Next() {
		var v models.ForecastValue
		if err := rows.Scan(
			&v.ProductCode, &v.Year, &v.TypeID, &v.Month, &v.Value,
			&v.UserID, &v.Username, &v.UserFullName, &v.ModifiedAt, &v.Method,
		); err != nil {
			return nil, &models.DatabaseError{Op: "forecast_values.list", Err: err}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.list", Err: err}
	}
	return values, nil
}

// UpsertAndLog reads the current value for the key, upserts the row and
// appends one log entry, all inside a single transaction. The legacy
// system issued the upsert and the log insert as two bare statements and
// could leave an unlogged update behind a crash; wrapping them closes
// that gap. Last-write-wins across concurrent transactions is unchanged.
func (r *forecastRepo) UpsertAndLog(ctx context.Context, cmd models.UpsertCommand, modifiedAt time.Time) (*float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.upsert", Err: err}
	}
	defer tx.Rollback()

	var previous sql.NullFloat64
	err = tx.QueryRowContext(ctx, `
		SELECT valor FROM forecast_values
		WHERE produto_codigo = $1 AND ano = $2 AND id_tipo = $3 AND mes = $4
	`, cmd.ProductCode, cmd.Year, cmd.TypeID, cmd.Month).Scan(&previous)
	if err != nil && err != sql.ErrNoRows {
		return nil, &models.DatabaseError{Op: "forecast_values.upsert", Err: err}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO forecast_values
			(produto_codigo, ano, id_tipo, mes, valor, user_id, username, user_fullname, modified_at, metodo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (produto_codigo, ano, id_tipo, mes) DO UPDATE SET
			valor = EXCLUDED.valor,
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			user_fullname = EXCLUDED.user_fullname,
			modified_at = EXCLUDED.modified_at,
			metodo = EXCLUDED.metodo
	`, cmd.ProductCode, cmd.Year, cmd.TypeID, cmd.Month, cmd.Value,
		cmd.Editor.UserID, cmd.Editor.Username, cmd.Editor.FullName, modifiedAt, cmd.Method)
	if err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.upsert", Err: err}
	}

	var prevPtr *float64
	if previous.Valid {
		prevPtr = &previous.Float64
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO forecast_values_log
			(produto_codigo, ano, id_tipo, mes, valor_anterior, valor_novo, user_id, username, user_fullname, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, cmd.ProductCode, cmd.Year, cmd.TypeID, cmd.Month, prevPtr, cmd.Value,
		cmd.Editor.UserID, cmd.Editor.Username, cmd.Editor.FullName, modifiedAt)
	if err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.log", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values.upsert", Err: err}
	}
	return prevPtr, nil
}

// History retrieves all log rows for a product, newest first, with the
// editor's current full name joined in from usuarios
func (r *forecastRepo) History(ctx context.Context, productCode string) ([]models.ForecastLogEntry, error) {
	query := `
		SELECT l.id, l.produto_codigo, l.ano, l.id_tipo, l.mes,
		       l.valor_anterior, l.valor_novo, l.user_id, l.username,
		       l.user_fullname, l.modified_at, u.nome AS user_name
		FROM forecast_values_log l
		LEFT JOIN usuarios u ON l.user_id = u.id
		WHERE l.produto_codigo = $1
		ORDER BY l.modified_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productCode)
	if err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values_log.history", Err: err}
	}
	defer rows.Close()

	entries := []models.ForecastLogEntry{}
	for rows.Next() {
		var e models.ForecastLogEntry
		if err := rows.Scan(
			&e.ID, &e.ProductCode, &e.Year, &e.TypeID, &e.Month,
			&e.PreviousValue, &e.NewValue, &e.UserID, &e.Username,
			&e.UserFullName, &e.ModifiedAt, &e.UserName,
		); err != nil {
			return nil, &models.DatabaseError{Op: "forecast_values_log.history", Err: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "forecast_values_log.history", Err: err}
	}
	return entries, nil
}
