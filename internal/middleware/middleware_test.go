package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/session"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newApp(mgr *session.Manager) *fiber.App {
	app := fiber.New()
	app.Use(Sessions(mgr, "sid", zap.NewNop()))
	app.Get("/login", func(c *fiber.Ctx) error {
		Session(c).Authenticate(c.Query("user"), c.Query("role"))
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", AuthUser(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user").(string))
	})
	app.Get("/admin", AuthAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("Expected a session cookie")
	return nil
}

func TestSessionsAndAuth(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(time.Minute), zap.NewNop())
	app := newApp(mgr)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Expected status 403, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/login?user=ada&role=editor", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	cookie := sessionCookie(t, resp)
	if !cookie.HttpOnly {
		t.Error("Expected an HTTP-only cookie")
	}

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(cookie)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("Expected editor to be refused admin access, got %d", resp.StatusCode)
	}
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(VersionMiddleware("2.1.0"))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Api-Version", "1.0")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if got := resp.Header.Get("X-Api-Version"); got != "2.1.0" {
		t.Errorf("Expected response version 2.1.0, got %q", got)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/moved", func(c *fiber.Ctx) error { return c.Redirect("/ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })

	for _, path := range []string{"/ok", "/moved", "/bad"} {
		if _, err := app.Test(httptest.NewRequest("GET", path, nil)); err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
	}

	levels := []zapcore.Level{zapcore.DebugLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	entries := logs.All()
	if len(entries) != len(levels) {
		t.Fatalf("Expected %d entries, got %d", len(levels), len(entries))
	}
	for i, want := range levels {
		if entries[i].Level != want {
			t.Errorf("Entry %d: expected %s, got %s", i, want, entries[i].Level)
		}
	}
}
