package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/mocks"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, repo *mocks.MockUserRepository, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	user := &models.User{
		ID:           len(repo.Users) + 1,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         "user",
	}
	repo.Users[username] = user
	return user
}

func TestAuthService_LoginSuccess(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	user := seedUser(t, repo, "admin", "secret123")
	user.Role = "admin"

	svc := service.NewAuthService(repo, zerolog.Nop())

	profile, err := svc.Login(context.Background(), "admin", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if profile.Username != "admin" {
		t.Errorf("expected username admin, got %s", profile.Username)
	}
	if profile.Role != "admin" {
		t.Errorf("expected role admin, got %s", profile.Role)
	}

	// last_login is stamped on success
	if _, ok := repo.LastLogins[user.ID]; !ok {
		t.Error("expected last_login to be updated")
	}
}

func TestAuthService_WrongPassword(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	seedUser(t, repo, "marco.bousas", "Marco123")

	svc := service.NewAuthService(repo, zerolog.Nop())

	_, err := svc.Login(context.Background(), "marco.bousas", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_UnknownUser(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := service.NewAuthService(repo, zerolog.Nop())

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_MissingCredentials(t *testing.T) {
	svc := service.NewAuthService(mocks.NewMockUserRepository(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "", "")
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestAuthService_LegacyPlaintextFallback(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	repo.Users["legacy.user"] = &models.User{
		ID:           9,
		Username:     "legacy.user",
		PasswordHash: " Legacy123 ", // legacy rows stored the password verbatim, sometimes padded
		FullName:     "Legacy User",
	}

	svc := service.NewAuthService(repo, zerolog.Nop())

	profile, err := svc.Login(context.Background(), "legacy.user", "Legacy123")
	if err != nil {
		t.Fatalf("legacy login failed: %v", err)
	}
	if profile.ID != 9 {
		t.Errorf("expected user id 9, got %d", profile.ID)
	}

	// Default role applies when the row has none
	if profile.Role != "user" {
		t.Errorf("expected default role user, got %s", profile.Role)
	}
}
