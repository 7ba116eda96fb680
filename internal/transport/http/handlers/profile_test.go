package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jvfernandez09/jfc-app/internal/infra/security"
)

func authedJSONRequest(t *testing.T, env *testEnv, userID, email, method, target, body string) *http.Request {
	t.Helper()

	token, err := env.codec.Mint(userID, email)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	return req
}

func TestProfileRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(jsonRequest(http.MethodPut, "/api/v1/profile", `{"name":"Alice","email":"alice@example.com"}`))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestProfileUpdateRemintsCookie(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "password123")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodPut, "/api/v1/profile",
		`{"name":"Alice Cooper","email":"alice.cooper@example.com"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["email"] != "alice.cooper@example.com" {
		t.Errorf("email = %v, want updated", body["email"])
	}

	cookie := sessionCookie(t, w)
	if cookie == nil {
		t.Fatal("profile update did not rewrite the session cookie")
	}
	claims, err := env.codec.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("verify re-minted token: %v", err)
	}
	if claims.Email != "alice.cooper@example.com" {
		t.Errorf("token email = %q, want the new address", claims.Email)
	}
}

func TestProfileUpdateStaleTokenResolvesNewEmail(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "password123")

	staleToken, err := env.codec.Mint(id, "alice@example.com")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodPut, "/api/v1/profile",
		`{"name":"Alice","email":"alice.cooper@example.com"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	// A client still holding the pre-update cookie sees the live identity,
	// not the stale email snapshot embedded in its token.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: staleToken})
	w = env.do(req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", w.Code)
	}
	user, ok := decodeBody(t, w)["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing from body %s", w.Body.String())
	}
	if user["email"] != "alice.cooper@example.com" {
		t.Errorf("email = %v, want the updated address", user["email"])
	}
}

func TestProfileUpdateEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "password123")
	mustRegister(t, env, "Bob", "bob@example.com", "password123")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodPut, "/api/v1/profile",
		`{"name":"Alice","email":"bob@example.com"}`))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Email already exists." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "old-password")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodPut, "/api/v1/profile/password",
		`{"currentPassword":"old-password","newPassword":"new-password","confirmPassword":"new-password"}`))

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204, body %s", w.Code, w.Body.String())
	}

	user, err := env.repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	ok, err := security.VerifyPassword("new-password", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("new password does not verify: ok=%v err=%v", ok, err)
	}
}

func TestChangePasswordEndpointFieldErrors(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "old-password")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodPut, "/api/v1/profile/password",
		`{"currentPassword":"wrong","newPassword":"new-password","confirmPassword":"new-password"}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	body := decodeBody(t, w)
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("errors = %v, want field map", body["errors"])
	}
	if fields["currentPassword"] != "Current password is incorrect." {
		t.Errorf("errors.currentPassword = %v", fields["currentPassword"])
	}
}

func TestDeleteAccountEndpoint(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "password123")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodDelete, "/api/v1/profile",
		`{"password":"password123"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["redirect"] != "/login" {
		t.Errorf("redirect = %v, want /login", body["redirect"])
	}

	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie = %+v, want cleared", cookie)
	}
	if len(env.repo.users) != 0 {
		t.Errorf("stored %d users after deletion, want 0", len(env.repo.users))
	}
}

func TestDeleteAccountEndpointWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	id := mustRegister(t, env, "Alice", "alice@example.com", "password123")

	w := env.do(authedJSONRequest(t, env, id, "alice@example.com",
		http.MethodDelete, "/api/v1/profile",
		`{"password":"not-the-password"}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	body := decodeBody(t, w)
	fields, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("errors = %v, want field map", body["errors"])
	}
	if fields["password"] != "Password is incorrect." {
		t.Errorf("errors.password = %v", fields["password"])
	}
	if len(env.repo.users) != 1 {
		t.Errorf("user removed despite failed re-authentication")
	}
}
