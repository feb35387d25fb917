package repository

import (
	"context"
	"database/sql"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// productRepo is the concrete implementation of ProductRepository
type productRepo struct {
	db *database.DB
}

// NewProductRepo creates a new product repository
func NewProductRepo(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

// List retrieves the fixed column projection of every product
func (r *productRepo) List(ctx context.Context) ([]models.ProductSummary, error) {
	query := `SELECT codigo, produto, empresa, fabrica, familia1, familia2, marca FROM produtos`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.DatabaseError{Op: "produtos.list", Err: err}
	}
	defer rows.Close()

	products := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.Code, &p.Name, &p.Company, &p.Factory, &p.Family1, &p.Family2, &p.Brand); err != nil {
			return nil, &models.DatabaseError{Op: "produtos.list", Err: err}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DatabaseError{Op: "produtos.list", Err: err}
	}
	return products, nil
}

// GetByName retrieves a single product by exact name match
func (r *productRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	query := `
		SELECT codigo, produto, empresa, fabrica, familia1, familia2, marca,
		       preco_venda, estoque, custo_fob, moeda_fob, data_fob
		FROM produtos WHERE produto = $1
	`

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&p.Code, &p.Name, &p.Company, &p.Factory, &p.Family1, &p.Family2, &p.Brand,
		&p.SalePrice, &p.Stock, &p.FOBCost, &p.FOBCurrency, &p.FOBDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.DatabaseError{Op: "produtos.get", Err: err}
	}
	return &p, nil
}
