package repository

import (
	"context"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// saleRepo is the concrete implementation of SaleRepository
type saleRepo struct {
	db *database.DB
}

// NewSaleRepo creates a new sales repository
func NewSaleRepo(db *database.DB) SaleRepository {
	return &saleRepo{db: db}
}

// ListByProduct retrieves historical sales for a product ordered by date.
// Revenue is stored as text in the legacy schema; NULL and empty values
// coalesce to zero.
func (r *saleRepo) ListByProduct(ctx context.Context, productCode string) ([]models.Sale, error) {
	query := `
		SELECT codigo, data, quantidade,
		       CAST(COALESCE(NULLIF(receita, ''), '0') AS DOUBLE PRECISION) AS receita,
		       cod_cliente, nota, cod_vendedor
		FROM vendas
		WHERE codigo = $1
		ORDER BY data
	`

	rows, err := r.db.QueryContext(ctx, query, productCode)
	if err != nil {
		return nil, &models.DatabaseError{Op: "vendas.list", Err: err}
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.Code, &s.Date, &s.Quantity, &s.Revenue, &s.CustomerID, &s.Invoice, &s.SellerID); err != nil {
			return nil, &models.DatabaseError{Op: "vendas.list", Err: err}
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "vendas.list", Err: err}
	}
	return sales, nil
}
