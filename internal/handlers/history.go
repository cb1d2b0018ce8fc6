package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

// HistoryHandler serves the processed-spreadsheet audit log.
type HistoryHandler struct {
	store Store
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(store Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// List returns the most recent runs plus per-source totals. The limit
// query parameter defaults to 20, capped at 100.
func (h *HistoryHandler) List(c fiber.Ctx) error {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return jsonError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = min(n, 100)
	}

	runs, err := h.store.ListRecentRuns(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load history")
	}
	counts, err := h.store.CountRunsBySource(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load history")
	}

	return jsonSuccess(c, fiber.Map{
		"runs":      runs,
		"by_source": counts,
	})
}
