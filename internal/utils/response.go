package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Respond sends body as JSON, or an empty body when body is nil
func Respond(c *fiber.Ctx, body interface{}, status int) error {
	if body == nil {
		return c.Status(status).Send(nil)
	}
	return c.Status(status).JSON(body)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "")
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// CheckResponseStruct defines the schema for auth check responses
type CheckResponseStruct struct {
	Check string `json:"check" example:"login successful"`
}
