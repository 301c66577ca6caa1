package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/session"
	"go.uber.org/zap"
)

const sessionKey = "session"

// Sessions attaches the client's session to the request and persists it afterwards.
func Sessions(mgr *session.Manager, cookie string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := mgr.Start(c.UserContext(), c.Cookies(cookie))
		if err != nil {
			log.Error("failed to load session", zap.Error(err))
			return fiber.NewError(fiber.StatusServiceUnavailable, "Session store unavailable")
		}
		c.Locals(sessionKey, sess)

		handlerErr := c.Next()

		if err := mgr.Commit(c.UserContext(), sess); err != nil {
			log.Error("failed to save session", zap.String("session", sess.ID), zap.Error(err))
			if handlerErr == nil {
				handlerErr = fiber.NewError(fiber.StatusServiceUnavailable, "Session store unavailable")
			}
		}
		c.Cookie(&fiber.Cookie{
			Name:     cookie,
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return handlerErr
	}
}

// Session returns the request's session. Without the Sessions middleware it
// returns a throwaway anonymous session.
func Session(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals(sessionKey).(*session.Session); ok {
		return sess
	}
	return session.New("")
}

// AuthAdmin requires an authenticated admin session
func AuthAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, "admin")
	}
}

// AuthUser requires any authenticated session
func AuthUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, "")
	}
}

func authorize(c *fiber.Ctx, role string) error {
	sess := Session(c)
	if !sess.IsAuthenticated() {
		return fiber.NewError(fiber.StatusForbidden, "Authentication required")
	}
	if role != "" && sess.Role() != role {
		return fiber.NewError(fiber.StatusForbidden, "Role "+role+" required")
	}

	username, _ := sess.Username()
	c.Locals("user", username)
	return c.Next()
}
