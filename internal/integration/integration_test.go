//go:build integration

package integration_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/database"
	"github.com/yashodhanketkar/citenote/internal/middleware"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/session"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/testutil"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// TestWithContainers runs the services against a real database and Redis
func TestWithContainers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	stack, err := testutil.StartStack(t)
	require.NoError(t, err)
	t.Cleanup(func() { stack.Terminate(t) })

	for k, v := range stack.Env() {
		t.Setenv(k, v)
	}
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DATABASE", "citenote")
	t.Setenv("DB_APP_USER", "citenote_app")
	t.Setenv("DB_APP_PASSWORD", "citenote_app")
	t.Setenv("DB_USER", "citenote_auth")
	t.Setenv("DB_PASSWORD", "citenote_auth")
	t.Setenv("PASSWORD_PEPPER", "integration")

	cfg, err := config.Load()
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	appDB, err := database.Connect(cfg, log)
	require.NoError(t, err)
	defer database.Close(appDB)
	require.NoError(t, database.AutoMigrate(appDB))

	userDB, err := database.ConnectUser(cfg, log)
	require.NoError(t, err)
	defer database.Close(userDB)

	ctx := context.Background()
	records := store.New(appDB, cfg.StoreTimeout)
	manuscripts := services.NewManuscriptService(records, log)
	papers := services.NewPaperService(records, log)
	links := services.NewAssociationService(records, log)

	t.Run("association engine", func(t *testing.T) {
		require.NoError(t, manuscripts.Create(ctx, "M1", "manuscript"))
		require.NoError(t, papers.Create(ctx, "P1", "paper"))
		m, err := manuscripts.Get(ctx, "M1")
		require.NoError(t, err)
		p, err := papers.Get(ctx, "P1")
		require.NoError(t, err)

		require.NoError(t, links.AddPaper(ctx, m.ID, p.ID))
		assert.ErrorIs(t, links.AddPaper(ctx, m.ID, p.ID), types.ErrResourceAlreadyExists)

		list, err := links.ListPapers(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Count)
	})

	t.Run("redis sessions", func(t *testing.T) {
		client := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		sessions := session.NewRedisStore(client, time.Minute)
		require.NoError(t, sessions.Ping(ctx))

		auth := services.NewAuthService(store.New(userDB, cfg.StoreTimeout),
			security.NewBcryptHasher(cfg.PasswordPepper, bcrypt.MinCost),
			services.NewRoleValidator(cfg.AllowedRoles), log)
		require.NoError(t, auth.Register(ctx, "ada", "secret", "editor"))

		ops := services.NewWrapper(log, services.StatusLegacy)
		app := fiber.New()
		app.Use(middleware.Sessions(session.NewManager(sessions, log), cfg.SessionCookie, log))
		app.Post("/login", func(c *fiber.Ctx) error {
			resp := ops.Check("login", func() error {
				return auth.Login(c.UserContext(), middleware.Session(c), c.FormValue("username"), c.FormValue("password"))
			})
			return c.Status(resp.Status).JSON(resp.Body)
		})

		body := url.Values{"username": {"ada"}, "password": {"secret"}}.Encode()
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var id string
		for _, c := range resp.Cookies() {
			if c.Name == cfg.SessionCookie {
				id = c.Value
			}
		}
		data, ok, err := sessions.Load(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "ada", data.Username)
	})

	t.Run("health", func(t *testing.T) {
		client := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer client.Close()
		result := services.HealthCheck(ctx, cfg, appDB, session.NewRedisStore(client, time.Minute), log)
		assert.Equal(t, "healthy", result.Status)
	})
}
