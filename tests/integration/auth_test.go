//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// uniqueEmail avoids collisions between tests that each register an account
// against the shared database.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func register(t *testing.T, email string) authResponse {
	t.Helper()

	resp := doPost(t, "/api/auth/signup", map[string]string{
		"name":            "Integration Tester",
		"email":           email,
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", resp.StatusCode)
	}
	return decodeJSON[authResponse](t, resp)
}

func TestSignup(t *testing.T) {
	auth := register(t, uniqueEmail("signup"))

	if auth.Message != "User created successfully" {
		t.Errorf("message: got %q", auth.Message)
	}
	if auth.Token == "" {
		t.Error("token is empty")
	}
	if auth.User.ID == "" {
		t.Error("user id is empty")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	email := uniqueEmail("dup")
	register(t, email)

	resp := doPost(t, "/api/auth/signup", map[string]string{
		"name":            "Second",
		"email":           email,
		"password":        "secret123",
		"confirmPassword": "secret123",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "User with this email already exists" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestSignin(t *testing.T) {
	email := uniqueEmail("signin")
	register(t, email)

	resp := doPost(t, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	auth := decodeJSON[authResponse](t, resp)
	if auth.Message != "Login successful" {
		t.Errorf("message: got %q", auth.Message)
	}
	if auth.Token == "" {
		t.Error("token is empty")
	}
}

func TestSignin_WrongPassword(t *testing.T) {
	email := uniqueEmail("wrongpw")
	register(t, email)

	resp := doPost(t, "/api/auth/signin", map[string]string{
		"email":    email,
		"password": "not-the-password",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "Invalid credentials" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestMe(t *testing.T) {
	email := uniqueEmail("me")
	auth := register(t, email)

	resp := doRequest(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[map[string]userResponse](t, resp)
	if body["user"].Email != email {
		t.Errorf("email: got %q, want %q", body["user"].Email, email)
	}
}

func TestMe_NoToken(t *testing.T) {
	resp := doGet(t, "/api/auth/me")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "No token, authorization denied" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestMe_InvalidToken(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/auth/me", "not-a-valid-token", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "Token is not valid" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestUpdateProfile(t *testing.T) {
	auth := register(t, uniqueEmail("profile"))

	resp := doRequest(t, http.MethodPut, "/api/auth/profile", auth.Token, map[string]string{
		"name": "Renamed Tester",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}](t, resp)

	if body.Message != "Profile updated successfully" {
		t.Errorf("message: got %q", body.Message)
	}
	if body.User.Name != "Renamed Tester" {
		t.Errorf("name: got %q", body.User.Name)
	}
}

func TestSignout(t *testing.T) {
	auth := register(t, uniqueEmail("signout"))

	resp := doRequest(t, http.MethodPost, "/api/auth/signout", auth.Token, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[messageResponse](t, resp)
	if body.Message != "Signed out successfully" {
		t.Errorf("message: got %q", body.Message)
	}
}
