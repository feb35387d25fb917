package database

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// seedAccount is one fixed account created on first bootstrap
type seedAccount struct {
	Username string
	Password string
	FullName string
	Role     string
}

var seedAccounts = []seedAccount{
	{Username: "admin", Password: "admin", FullName: "Administrador", Role: "admin"},
	{Username: "rogerio.bousas", Password: "Rogerio123", FullName: "Rogério Bousas", Role: "user"},
	{Username: "marco.bousas", Password: "Marco123", FullName: "Marco Bousas", Role: "user"},
	{Username: "sulamita.nascimento", Password: "Sulamita123", FullName: "Sulamita Nascimento", Role: "user"},
	{Username: "elisangela.tavares", Password: "Elisangela123", FullName: "Elisangela Tavares", Role: "user"},
	{Username: "pedro.hoffmann", Password: "Pedro123", FullName: "Pedro Hoffmann", Role: "user"},
	{Username: "guilherme.maia", Password: "Guilherme123", FullName: "Guilherme Maia", Role: "user"},
}

// Bootstrap idempotently ensures the usuarios and forecast_values_log
// tables exist and seeds the fixed accounts. It is invoked at process
// start and again once the server is listening; every step checks for
// pre-existence, so the double invocation is harmless. Failures are
// reported to the caller, which logs and continues: a bootstrap error
// is never fatal to startup.
func (db *DB) Bootstrap(ctx context.Context) error {
	if err := db.ensureUsersTable(ctx); err != nil {
		return err
	}
	if err := db.ensureLogTable(ctx); err != nil {
		return err
	}
	return db.seedUsers(ctx)
}

// tableExists checks catalog metadata for a base table by name
func (db *DB) tableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM information_schema.tables
			WHERE table_type = 'BASE TABLE' AND table_name = $1
		)
	`, name).Scan(&exists)
	return exists, err
}

func (db *DB) ensureUsersTable(ctx context.Context) error {
	exists, err := db.tableExists(ctx, "usuarios")
	if err != nil {
		return fmt.Errorf("failed to check usuarios table: %w", err)
	}
	if exists {
		return nil
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE usuarios (
			id SERIAL PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			nome VARCHAR(100),
			role VARCHAR(50) DEFAULT 'user',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			last_login TIMESTAMPTZ
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create usuarios table: %w", err)
	}

	db.log.Info().Msg("Created usuarios table")
	return nil
}

func (db *DB) ensureLogTable(ctx context.Context) error {
	exists, err := db.tableExists(ctx, "forecast_values_log")
	if err != nil {
		return fmt.Errorf("failed to check forecast_values_log table: %w", err)
	}
	if exists {
		return nil
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE forecast_values_log (
			id SERIAL PRIMARY KEY,
			produto_codigo VARCHAR(50) NOT NULL,
			ano INT NOT NULL,
			id_tipo INT NOT NULL,
			mes VARCHAR(3) NOT NULL,
			valor_anterior DECIMAL(18,2),
			valor_novo DECIMAL(18,2) NOT NULL,
			user_id INT,
			username VARCHAR(100),
			user_fullname VARCHAR(100),
			modified_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create forecast_values_log table: %w", err)
	}

	db.log.Info().Msg("Created forecast_values_log table")
	return nil
}

// seedUsers creates each fixed account individually, skipping any that
// already exist. No upsert: rows edited since seeding are left alone.
// Passwords are stored as bcrypt hashes, not plaintext as the legacy
// system did.
func (db *DB) seedUsers(ctx context.Context) error {
	for _, acc := range seedAccounts {
		var exists bool
		err := db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM usuarios WHERE username = $1)", acc.Username,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", acc.Username, err)
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", acc.Username, err)
		}

		_, err = db.ExecContext(ctx, `
			INSERT INTO usuarios (username, password_hash, nome, role)
			VALUES ($1, $2, $3, $4)
		`, acc.Username, string(hash), acc.FullName, acc.Role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", acc.Username, err)
		}

		db.log.Info().Str("username", acc.Username).Msg("Created seed user")
	}
	return nil
}
