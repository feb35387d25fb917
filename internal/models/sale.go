package models

import (
	"time"
)

// Sale is an immutable historical sales fact for a product code
type Sale struct {
	Code       string    `json:"codigo" db:"codigo"`
	Date       time.Time `json:"data" db:"data"`
	Quantity   float64   `json:"quantidade" db:"quantidade"`
	Revenue    float64   `json:"receita" db:"receita"`
	CustomerID *string   `json:"cod_cliente" db:"cod_cliente"`
	Invoice    *string   `json:"nota" db:"nota"`
	SellerID   *string   `json:"cod_vendedor" db:"cod_vendedor"`
}
