package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jvfernandez09/jfc-app/internal/infra/security"
)

func TestUpdateProfileRemintsToken(t *testing.T) {
	repo := newTestUserRepo()
	codec := newTestSessionCodec(t)
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")

	svc := NewUserService(repo, codec)

	user, token, err := svc.UpdateProfile(context.Background(), id, "Alice Cooper", "alice.cooper@example.com")
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.Name != "Alice Cooper" {
		t.Errorf("name = %q, want %q", user.Name, "Alice Cooper")
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify re-minted token: %v", err)
	}
	if claims.Email != "alice.cooper@example.com" {
		t.Errorf("token email = %q, want the new address", claims.Email)
	}
	if claims.UserID != id {
		t.Errorf("token user id = %q, want %q", claims.UserID, id)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")
	svc := NewUserService(repo, newTestSessionCodec(t))

	cases := []struct {
		name        string
		formName    string
		formEmail   string
		wantMessage string
	}{
		{"missing name", "", "alice@example.com", "Name and email are required."},
		{"missing email", "Alice", "", "Name and email are required."},
		{"bad email shape", "Alice", "not-an-email", "Please enter a valid email."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.UpdateProfile(context.Background(), id, tc.formName, tc.formEmail)
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("err = %v, want validation error", err)
			}
			if ve.Message != tc.wantMessage {
				t.Errorf("message = %q, want %q", ve.Message, tc.wantMessage)
			}
		})
	}
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")
	mustCreateUser(t, repo, "Bob", "bob@example.com", "password123")
	svc := NewUserService(repo, newTestSessionCodec(t))

	_, _, err := svc.UpdateProfile(context.Background(), id, "Alice", "bob@example.com")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "old-password")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.ChangePassword(context.Background(), id, "old-password", "new-password", "new-password")
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	user, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ok, err := security.VerifyPassword("new-password", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password does not verify: ok=%v err=%v", ok, err)
	}
}

func TestChangePasswordCollectsFieldErrors(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "old-password")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.ChangePassword(context.Background(), id, "", "", "")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}

	want := map[string]string{
		"currentPassword": "The current password field is required.",
		"newPassword":     "The password field is required.",
		"confirmPassword": "The password confirmation field is required.",
	}
	for field, msg := range want {
		if ve.Fields[field] != msg {
			t.Errorf("fields[%q] = %q, want %q", field, ve.Fields[field], msg)
		}
	}
	if len(ve.Fields) != len(want) {
		t.Errorf("fields = %v, want exactly %d entries", ve.Fields, len(want))
	}
}

func TestChangePasswordTooShort(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "old-password")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.ChangePassword(context.Background(), id, "old-password", "short", "short")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["newPassword"] != "The password field must be at least 8 characters." {
		t.Errorf("fields[newPassword] = %q", ve.Fields["newPassword"])
	}
}

func TestChangePasswordMismatchedConfirmation(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "old-password")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.ChangePassword(context.Background(), id, "old-password", "new-password", "other-password")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["confirmPassword"] != "The password field confirmation does not match." {
		t.Errorf("fields[confirmPassword] = %q", ve.Fields["confirmPassword"])
	}
}

func TestChangePasswordWrongCurrentKeepsDigest(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "old-password")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.ChangePassword(context.Background(), id, "not-the-password", "new-password", "new-password")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["currentPassword"] != "Current password is incorrect." {
		t.Errorf("fields[currentPassword] = %q", ve.Fields["currentPassword"])
	}

	user, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ok, err = security.VerifyPassword("old-password", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("old password no longer verifies: ok=%v err=%v", ok, err)
	}
}

func TestDeleteAccountSuccess(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")
	svc := NewUserService(repo, newTestSessionCodec(t))

	if err := svc.DeleteAccount(context.Background(), id, "password123"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), id); err == nil {
		t.Error("user row still present after deletion")
	}
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.DeleteAccount(context.Background(), id, "")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["password"] != "The password field is required." {
		t.Errorf("fields[password] = %q", ve.Fields["password"])
	}
}

func TestDeleteAccountWrongPassword(t *testing.T) {
	repo := newTestUserRepo()
	id := mustCreateUser(t, repo, "Alice", "alice@example.com", "password123")
	svc := NewUserService(repo, newTestSessionCodec(t))

	err := svc.DeleteAccount(context.Background(), id, "not-the-password")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	if ve.Fields["password"] != "Password is incorrect." {
		t.Errorf("fields[password] = %q", ve.Fields["password"])
	}

	if _, err := repo.GetByID(context.Background(), id); err != nil {
		t.Error("user row removed despite failed re-authentication")
	}
}
