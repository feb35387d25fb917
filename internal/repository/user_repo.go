package repository

import (
	"context"
	"database/sql"

	"github.com/sales-forecast-api/internal/database"
	"github.com/sales-forecast-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// GetByUsername retrieves an account by username, nil when absent
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, nome, role, created_at, last_login
		FROM usuarios WHERE username = $1
	`

	var u models.User
	var fullName sql.NullString
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &fullName, &role, &u.CreatedAt, &u.LastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &models.DatabaseError{Op: "usuarios.get", Err: err}
	}

	u.FullName = fullName.String
	u.Role = role.String
	return &u, nil
}

// UpdateLastLogin stamps the account's last successful login
func (r *userRepo) UpdateLastLogin(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, "UPDATE usuarios SET last_login = NOW() WHERE id = $1", id)
	if err != nil {
		return &models.DatabaseError{Op: "usuarios.last_login", Err: err}
	}
	return nil
}
