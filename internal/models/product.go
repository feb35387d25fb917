package models

import (
	"time"
)

// Product is immutable from this system's perspective; rows are
// maintained directly in the database by other tooling.
type Product struct {
	Code        string     `json:"codigo" db:"codigo"`
	Name        string     `json:"produto" db:"produto"`
	Company     string     `json:"empresa" db:"empresa"`
	Factory     string     `json:"fabrica" db:"fabrica"`
	Family1     string     `json:"familia1" db:"familia1"`
	Family2     string     `json:"familia2" db:"familia2"`
	Brand       string     `json:"marca" db:"marca"`
	SalePrice   *float64   `json:"preco_venda" db:"preco_venda"`
	Stock       *float64   `json:"estoque" db:"estoque"`
	FOBCost     *float64   `json:"custo_fob" db:"custo_fob"`
	FOBCurrency *string    `json:"moeda_fob" db:"moeda_fob"`
	FOBDate     *time.Time `json:"data_fob" db:"data_fob"`
}

// ProductSummary is the fixed column projection used by the product listing
type ProductSummary struct {
	Code    string `json:"codigo" db:"codigo"`
	Name    string `json:"produto" db:"produto"`
	Company string `json:"empresa" db:"empresa"`
	Factory string `json:"fabrica" db:"fabrica"`
	Family1 string `json:"familia1" db:"familia1"`
	Family2 string `json:"familia2" db:"familia2"`
	Brand   string `json:"marca" db:"marca"`
}
