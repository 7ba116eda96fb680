package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jvfernandez09/jfc-app/internal/core/domain"
	"github.com/jvfernandez09/jfc-app/internal/core/port"
	"github.com/jvfernandez09/jfc-app/internal/infra/security"
	"github.com/jvfernandez09/jfc-app/internal/repository"
)

// AuthService owns login and session resolution.
type AuthService struct {
	users    port.UserRepository
	sessions *security.SessionCodec
}

// NewAuthService constructs an auth service.
func NewAuthService(users port.UserRepository, sessions *security.SessionCodec) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies the credentials and mints a session token. Empty input,
// unknown email, and digest mismatch all collapse to ErrInvalidCredentials;
// empty input short-circuits before touching storage. Storage failures other
// than a missing row propagate to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user by email: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Mint(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("mint session token: %w", err)
	}

	return user, token, nil
}

// CurrentUser resolves a raw session token into an identity. Every failure
// along the way collapses to the anonymous identity: missing token, bad
// signature, malformed payload, expiry, and a user row deleted since mint.
// It never returns an error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) domain.Identity {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return domain.Identity{}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return domain.Identity{}
	}

	return domain.Identified(user)
}

// ParseSession decodes the token without touching storage. Used where the
// caller only needs the embedded id and email.
func (s *AuthService) ParseSession(token string) (*security.SessionClaims, error) {
	return s.sessions.Verify(token)
}

// NormalizeEmail trims surrounding whitespace and lowercases so addresses
// differing only in case collide on the unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
