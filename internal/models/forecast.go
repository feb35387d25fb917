package models

import (
	"time"
)

// ForecastMethod marks the provenance of a forecast value
type ForecastMethod string

const (
	MethodUser ForecastMethod = "USER"
	MethodAI   ForecastMethod = "AI"
)

// ActualTypeID is the hard-coded id_tipo of the ACTUAL/REAL line.
// Realized months on the editable line mirror this line's values.
const ActualTypeID = 2

// Months lists the twelve fixed month labels, in calendar order
var Months = []string{"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

// ValidMonth reports whether mes is one of the twelve month labels
func ValidMonth(mes string) bool {
	for _, m := range Months {
		if m == mes {
			return true
		}
	}
	return false
}

// MonthIndex returns the zero-based calendar index of a month label, or -1
func MonthIndex(mes string) int {
	for i, m := range Months {
		if m == mes {
			return i
		}
	}
	return -1
}

// Editor identifies the user behind a forecast edit. All fields are
// optional; an anonymous edit carries a nil Editor.
type Editor struct {
	UserID   *int    `json:"userId,omitempty"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"userFullName,omitempty"`
}

// ForecastValue is one cell of the forecast grid, keyed by
// (produto_codigo, ano, id_tipo, mes). Exactly one row per key.
type ForecastValue struct {
	ProductCode  string         `json:"produto_codigo" db:"produto_codigo"`
	Year         int            `json:"ano" db:"ano"`
	TypeID       int            `json:"id_tipo" db:"id_tipo"`
	Month        string         `json:"mes" db:"mes"`
	Value        float64        `json:"valor" db:"valor"`
	UserID       *int           `json:"user_id" db:"user_id"`
	Username     *string        `json:"username" db:"username"`
	UserFullName *string        `json:"user_fullname" db:"user_fullname"`
	ModifiedAt   time.Time      `json:"modified_at" db:"modified_at"`
	Method       ForecastMethod `json:"metodo" db:"metodo"`
}

// ForecastLogEntry is one append-only audit record of a forecast change.
// Log rows are never updated or deleted.
type ForecastLogEntry struct {
	ID            int64     `json:"id" db:"id"`
	ProductCode   string    `json:"produto_codigo" db:"produto_codigo"`
	Year          int       `json:"ano" db:"ano"`
	TypeID        int       `json:"id_tipo" db:"id_tipo"`
	Month         string    `json:"mes" db:"mes"`
	PreviousValue *float64  `json:"valor_anterior" db:"valor_anterior"`
	NewValue      float64   `json:"valor_novo" db:"valor_novo"`
	UserID        *int      `json:"user_id" db:"user_id"`
	Username      *string   `json:"username" db:"username"`
	UserFullName  *string   `json:"user_fullname" db:"user_fullname"`
	ModifiedAt    time.Time `json:"modified_at" db:"modified_at"`
	UserName      *string   `json:"user_name,omitempty" db:"user_name"`
}

// UpsertCommand is the validated input of the forecast value store.
// Handlers build it from the request body before any business logic runs.
type UpsertCommand struct {
	ProductCode string
	Year        int
	TypeID      int
	Month       string
	Value       float64
	Editor      Editor
	Method      ForecastMethod
}

// Group is a (year, type-id, label) forecast line such as REVISÃO or REAL
type Group struct {
	Year   int    `json:"ano" db:"ano"`
	TypeID int    `json:"id_tipo" db:"id_tipo"`
	Type   string `json:"tipo" db:"tipo"`
	Code   string `json:"code" db:"code"`
}

// MonthConfiguration flags a (year, month) as realized, i.e. actuals
// are known and the forecast cell becomes read-only.
type MonthConfiguration struct {
	Year     int    `json:"ano" db:"ano"`
	Month    string `json:"mes" db:"mes"`
	Realized bool   `json:"realizado" db:"realizado"`
}
