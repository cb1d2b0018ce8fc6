// Package handlers holds the HTTP handlers for the dashboard and its
// JSON API.
package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
)

// Store is the database surface the handlers depend on. *db.DB satisfies
// it; tests substitute fakes.
type Store interface {
	InsertUploadRun(ctx context.Context, run *models.UploadRun) error
	ListRecentRuns(ctx context.Context, limit int) ([]models.UploadRun, error)
	CountRunsBySource(ctx context.Context) (map[string]int, error)
}

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// currentUserID returns the authenticated user's ID when a session user
// was loaded by the middleware.
func currentUserID(c fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}
