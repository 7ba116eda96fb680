package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jvfernandez09/jfc-app/internal/infra/security"
)

func TestLoginSuccess(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	svc := NewAuthService(repo, codec)

	user, token, err := svc.Login(context.Background(), "  Alice@Example.COM  ", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("user email = %q, want %q", user.Email, "alice@example.com")
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user id = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("claims email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	svc := NewAuthService(repo, codec)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"empty password", "alice@example.com", ""},
		{"unknown email", "bob@example.com", "password123"},
		{"wrong password", "alice@example.com", "not-the-password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginStorageFailurePropagates(t *testing.T) {
	repo := newTestUserRepo()
	svc := NewAuthService(repo, newTestSessionCodec(t))

	storageErr := errors.New("connection refused")
	repo.getByEmailErr = storageErr

	_, _, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("storage failure reported as ErrInvalidCredentials: %v", err)
	}
	if !errors.Is(err, storageErr) {
		t.Fatalf("err = %v, want wrapped storage error", err)
	}
}

func TestLoginEmptyInputSkipsStorage(t *testing.T) {
	repo := newTestUserRepo()
	svc := NewAuthService(repo, newTestSessionCodec(t))

	_, _, err := svc.Login(context.Background(), "", "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if repo.getByEmailCalls != 0 {
		t.Errorf("GetByEmail called %d times, want 0", repo.getByEmailCalls)
	}
}

func TestCurrentUserResolvesIdentity(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	svc := NewAuthService(repo, codec)

	token, err := codec.Mint(id, "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	identity := svc.CurrentUser(context.Background(), token)
	if identity.Anonymous() {
		t.Fatal("identity is anonymous, want identified")
	}
	if identity.User.ID != id {
		t.Errorf("identity user id = %q, want %q", identity.User.ID, id)
	}
}

func TestCurrentUserResolvesLiveRowAfterEmailChange(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	auth := NewAuthService(repo, codec)
	users := NewUserService(repo, codec)

	staleToken, err := codec.Mint(id, "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, _, err := users.UpdateProfile(context.Background(), id, "Alice", "alice.cooper@example.com"); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	// The pre-update token still carries the old email snapshot, but the
	// identity comes from the live row keyed by id.
	identity := auth.CurrentUser(context.Background(), staleToken)
	if identity.Anonymous() {
		t.Fatal("identity is anonymous, want identified")
	}
	if identity.User.Email != "alice.cooper@example.com" {
		t.Errorf("identity email = %q, want the updated address", identity.User.Email)
	}
}

func TestCurrentUserCollapsesToAnonymous(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	svc := NewAuthService(repo, codec)

	otherCodec, err := security.NewSessionCodec([]byte("another-secret"), "crm-api", time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	foreignToken, err := otherCodec.Mint(id, "alice@example.com")
	if err != nil {
		t.Fatalf("mint foreign token: %v", err)
	}

	staleToken, err := codec.Mint(id, "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", foreignToken},
		{"deleted user", staleToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := svc.CurrentUser(context.Background(), tc.token)
			if !identity.Anonymous() {
				t.Fatalf("identity = %+v, want anonymous", identity)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "alice@example.com")
	}
	if got := NormalizeEmail("   "); got != "" {
		t.Errorf("NormalizeEmail = %q, want empty", got)
	}
}
