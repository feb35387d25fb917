// Package grid holds the forecast grid arithmetic: which value a cell
// effectively displays, row totals, and the write-back plan applied
// after an AI forecast run.
package grid

import (
	"math"
	"sort"
	"strings"

	"github.com/sales-forecast-api/internal/models"
)

// EditableType is the label of the period-type line users may edit.
// Cells on this line mirror the ACTUAL line for realized months.
const EditableType = "REVISÃO"

// ValueLookup resolves the stored value for a (year, type-id, month)
// key; absent cells read as zero.
type ValueLookup func(year, typeID int, month string) float64

// IsEditableLine reports whether a period-type label is the editable
// REVISÃO line
func IsEditableLine(tipo string) bool {
	return strings.ToUpper(tipo) == EditableType
}

// EffectiveValue returns the value a cell displays. On the editable
// line a realized month is forced to the ACTUAL line's value; every
// other cell shows its own line's value.
func EffectiveValue(tipo string, year, typeID int, month string, realized bool, lookup ValueLookup) float64 {
	if IsEditableLine(tipo) && realized {
		return lookup(year, models.ActualTypeID, month)
	}
	return lookup(year, typeID, month)
}

// RowTotal is the rounded sum of the twelve effective monthly values of
// a (year, period-type) row
func RowTotal(tipo string, year, typeID int, realized map[string]bool, lookup ValueLookup) int {
	sum := 0.0
	for _, month := range models.Months {
		sum += EffectiveValue(tipo, year, typeID, month, realized[month], lookup)
	}
	return int(math.Round(sum))
}

// CellWrite is one forecast value destined for the store
type CellWrite struct {
	Year   int
	TypeID int
	Month  string
	Value  float64
}

// PlanWriteback maps a 36-month forecast onto individual cell writes.
// Month i of the forecast lands on (currentYear + i/12, month i%12);
// only REVISÃO lines of the current year onward are written, and months
// already flagged realized are skipped. Years are processed in
// ascending order.
func PlanWriteback(values []float64, groups []models.Group, configs []models.MonthConfiguration, currentYear int) []CellWrite {
	realized := make(map[int]map[string]bool)
	for _, mc := range configs {
		if realized[mc.Year] == nil {
			realized[mc.Year] = make(map[string]bool)
		}
		realized[mc.Year][mc.Month] = mc.Realized
	}

	years := make([]int, 0, len(realized))
	for year := range realized {
		years = append(years, year)
	}
	sort.Ints(years)

	writes := []CellWrite{}
	for _, year := range years {
		if year < currentYear {
			continue
		}

		var group *models.Group
		for i := range groups {
			if groups[i].Year == year && IsEditableLine(groups[i].Type) {
				group = &groups[i]
				break
			}
		}
		if group == nil {
			continue
		}

		offset := (year - currentYear) * 12
		for i, month := range models.Months {
			cfg, ok := realized[year][month]
			if !ok || cfg {
				continue
			}
			idx := offset + i
			if idx >= len(values) {
				continue
			}
			writes = append(writes, CellWrite{
				Year:   year,
				TypeID: group.TypeID,
				Month:  month,
				Value:  values[idx],
			})
		}
	}
	return writes
}
