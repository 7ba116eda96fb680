package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/core/port"
	"github.com/jvfernandez09/jfc-app/internal/infra/security"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

const (
	msgNameEmailRequired       = "Name and email are required."
	msgInvalidEmail            = "Please enter a valid email."
	msgUnableToUpdateProfile   = "Unable to update profile."
	msgCurrentPasswordRequired = "The current password field is required."
	msgNewPasswordRequired     = "The password field is required."
	msgConfirmPasswordRequired = "The password confirmation field is required."
	msgPasswordTooShort        = "The password field must be at least 8 characters."
	msgPasswordConfirmMismatch = "The password field confirmation does not match."
	msgCurrentPasswordWrong    = "Current password is incorrect."
	msgPasswordWrong           = "Password is incorrect."
	msgUnableToChangePassword  = "Unable to change password."
	msgUnableToDeleteAccount   = "Unable to delete account."
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// UserService handles profile maintenance for an authenticated user: profile
// updates, password changes, and account deletion. Every operation takes the
// user id decoded from the session; the transport layer guarantees one is
// present.
type UserService struct {
	users    port.UserRepository
	sessions *security.SessionCodec
}

// NewUserService constructs a user service.
func NewUserService(users port.UserRepository, sessions *security.SessionCodec) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// UpdateProfile rewrites name and email and re-mints the session token so the
// embedded email snapshot never goes stale. The fresh token is returned even
// when the email did not change.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" {
		return nil, "", NewValidationMessage(msgNameEmailRequired)
	}
	if !emailShape.MatchString(email) {
		return nil, "", NewValidationMessage(msgInvalidEmail)
	}

	user, err := s.users.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, "", ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, "", ErrSessionRequired
		default:
			return nil, "", NewValidationMessage(msgUnableToUpdateProfile)
		}
	}

	token, err := s.sessions.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("re-mint session token: %w", err)
	}

	return user, token, nil
}

// ChangePassword verifies the current password and overwrites the digest.
// Form problems are reported together in one field-scoped error; the stored
// digest is untouched until the current password verifies.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) error {
	fields := map[string]string{}
	if currentPassword == "" {
		fields["currentPassword"] = msgCurrentPasswordRequired
	}
	if newPassword == "" {
		fields["newPassword"] = msgNewPasswordRequired
	} else if len(newPassword) < 8 {
		fields["newPassword"] = msgPasswordTooShort
	}
	if confirmPassword == "" {
		fields["confirmPassword"] = msgConfirmPasswordRequired
	} else if newPassword != "" && newPassword != confirmPassword {
		fields["confirmPassword"] = msgPasswordConfirmMismatch
	}
	if len(fields) > 0 {
		return NewFieldErrors(fields)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionRequired
		}
		return NewValidationMessage(msgUnableToChangePassword)
	}

	ok, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil || !ok {
		return NewFieldErrors(map[string]string{"currentPassword": msgCurrentPasswordWrong})
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return NewValidationMessage(msgUnableToChangePassword)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionRequired
		}
		return NewValidationMessage(msgUnableToChangePassword)
	}

	return nil
}

// DeleteAccount re-authenticates with the password and removes the user row.
// Irreversible; the caller clears the session cookie afterwards.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	if password == "" {
		return NewFieldErrors(map[string]string{"password": msgNewPasswordRequired})
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionRequired
		}
		return NewValidationMessage(msgUnableToDeleteAccount)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return NewFieldErrors(map[string]string{"password": msgPasswordWrong})
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionRequired
		}
		return NewValidationMessage(msgUnableToDeleteAccount)
	}

	return nil
}
