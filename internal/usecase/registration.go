package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jvfernandez09/jfc-app/internal/core/port"
	"github.com/jvfernandez09/jfc-app/internal/infra/security"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

const (
	msgAllFieldsRequired   = "All fields are required."
	msgPasswordsDoNotMatch = "Passwords do not match."
	msgEmailExists         = "Email already exists."
	msgUnableToCreate      = "Unable to create account."
)

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	users port.UserRepository
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(users port.UserRepository) *RegistrationService {
	return &RegistrationService{users: users}
}

// Register validates the signup form and creates the account. No session is
// minted; the caller redirects to the login page on success. Uniqueness is
// left to the database constraint, not a pre-check.
func (s *RegistrationService) Register(ctx context.Context, name, email, password, confirmPassword string) (string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return "", NewValidationMessage(msgAllFieldsRequired)
	}
	if password != confirmPassword {
		return "", NewValidationMessage(msgPasswordsDoNotMatch)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return "", NewValidationMessage(msgUnableToCreate)
	}

	id, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return "", ErrEmailTaken
		}
		return "", NewValidationMessage(msgUnableToCreate)
	}

	return id, nil
}
