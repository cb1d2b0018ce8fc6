package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// DashboardHandler renders the HTML dashboard shell. All data arrives
// through the JSON API after page load.
type DashboardHandler struct{}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Index renders the dashboard page.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title": "Dashboard de Leads",
		"User":  currentUserID(c),
	})
}

// Login renders the login page.
func (h *DashboardHandler) Login(c fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login",
	})
}
