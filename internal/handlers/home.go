package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HomeHandler serves the landing, about and health routes
type HomeHandler struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions session.Store
	Log      *zap.Logger
}

// Home greets the caller
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to " + h.Config.AppName})
}

// About describes the service
func (h *HomeHandler) About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        h.Config.AppName,
		"version":     h.Config.AppVersion,
		"description": "Manuscripts, papers and their citations",
	})
}

// Health reports database and session store health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HomeHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Sessions, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
