package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/taxease-service/internal/auth"
	"github.com/spec-kit/taxease-service/internal/domain"
	apperrors "github.com/spec-kit/taxease-service/pkg/util"
)

func newTestApp(tm *auth.TokenManager, downstream *bool) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := auth.NewAuthMiddleware(tm)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		*downstream = true
		claims, _ := auth.ClaimsFromContext(c)
		return c.JSON(fiber.Map{"sub": claims.UserID()})
	})
	return app
}

func TestMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	var downstream bool
	app := newTestApp(auth.NewTokenManager("secret", time.Hour, time.Hour), &downstream)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if downstream {
		t.Fatal("downstream handler invoked without credentials")
	}
}

func TestMiddleware_NonBearerScheme(t *testing.T) {
	t.Parallel()

	var downstream bool
	app := newTestApp(auth.NewTokenManager("secret", time.Hour, time.Hour), &downstream)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if downstream {
		t.Fatal("downstream handler invoked with non-bearer scheme")
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()

	// millisecond TTL so the token is already expired by request time
	tm := auth.NewTokenManager("secret", time.Millisecond, time.Millisecond)
	var downstream bool
	app := newTestApp(tm, &downstream)

	tok, _, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Name: "A", Email: "a@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if downstream {
		t.Fatal("downstream handler invoked with expired token")
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	tm := auth.NewTokenManager("secret", time.Hour, time.Hour)
	var downstream bool
	app := newTestApp(tm, &downstream)

	tok, _, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Name: "A", Email: "a@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !downstream {
		t.Fatal("downstream handler not invoked for valid token")
	}
}
