package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/models"
	"github.com/sales-forecast-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password; callers must not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService is the concrete implementation of AuthService
type authService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

// NewAuthService creates the credential check service
func NewAuthService(users repository.UserRepository, log zerolog.Logger) AuthService {
	return &authService{
		users: users,
		log:   log.With().Str("service", "auth").Logger(),
	}
}

// Login verifies the credentials, stamps last_login and returns the
// account profile without the password field
func (s *authService) Login(ctx context.Context, username, password string) (*models.Profile, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.log.Info().Str("username", username).Msg("Login failed: unknown user")
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(user.PasswordHash, password) {
		s.log.Info().Str("username", username).Msg("Login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	profile := user.Profile()
	s.log.Info().Str("username", username).Int("user_id", user.ID).Msg("Login successful")
	return &profile, nil
}

// checkPassword verifies a password against the stored hash. Seeded
// rows carry bcrypt hashes; rows created by the legacy system stored
// the password verbatim, so anything that is not a bcrypt hash falls
// back to a constant-time plain comparison.
func checkPassword(stored, password string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	a := []byte(strings.TrimSpace(stored))
	b := []byte(strings.TrimSpace(password))
	return subtle.ConstantTimeCompare(a, b) == 1
}
