package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/gofiber/fiber/v2"
)

func TestMe(t *testing.T) {
	created := time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-123"}, nil
		},
		getUserFunc: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "user-123" {
				t.Errorf("GetUser userID = %q, want %q", userID, "user-123")
			}
			return &domain.User{
				ID:        userID,
				Name:      "Alice",
				Email:     "a@x.com",
				CreatedAt: created,
			}, nil
		},
	}

	handlers := NewHandlers(nil, nil, nil, mockAuth)

	app := fiber.New()
	app.Use(AuthMiddleware(mockAuth))
	app.Get("/api/auth/me", handlers.Me)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}

	var profile ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	if profile.ID != "user-123" {
		t.Errorf("ID = %q, want %q", profile.ID, "user-123")
	}
	if profile.Name != "Alice" {
		t.Errorf("Name = %q, want %q", profile.Name, "Alice")
	}
	if profile.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "a@x.com")
	}
	if !profile.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", profile.CreatedAt, created)
	}
}

func TestMe_GetUserError(t *testing.T) {
	mockAuth := &mockAuthPort{
		validateTokenFunc: func(ctx context.Context, token string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-123"}, nil
		},
		getUserFunc: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, errors.New("database connection lost: host=db-internal-7")
		},
	}

	handlers := NewHandlers(nil, nil, nil, mockAuth)

	app := fiber.New()
	app.Use(AuthMiddleware(mockAuth))
	app.Get("/api/auth/me", handlers.Me)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusInternalServerError)
	}

	// The raw store error must not leak to the client.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	if strings.Contains(string(body), "db-internal-7") {
		t.Errorf("body leaks internal error detail: %s", body)
	}
}

// A handler reached without the auth middleware must reject the request
// instead of proceeding with nil claims.
func TestMe_NoMiddleware(t *testing.T) {
	handlers := NewHandlers(nil, nil, nil, &mockAuthPort{})

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Get("/api/auth/me", handlers.Me)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnauthorized)
	}
}
