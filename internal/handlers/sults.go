package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sults"
)

// SultsHandler exposes the CRM contact snapshot.
type SultsHandler struct {
	source sults.Source
}

// NewSultsHandler creates a new Sults handler.
func NewSultsHandler(source sults.Source) *SultsHandler {
	return &SultsHandler{source: source}
}

type statusBucket struct {
	Leads []models.Contact `json:"leads"`
	Total int              `json:"total"`
}

// Status returns the contact snapshot grouped by status category.
func (h *SultsHandler) Status(c fiber.Ctx) error {
	if h.source == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "sults integration not configured")
	}

	contacts, err := h.source.Contacts(c.Context())
	if err != nil {
		metrics.RecordSultsFetch("error")
		return jsonError(c, fiber.StatusBadGateway, "sults fetch failed: "+err.Error())
	}
	metrics.RecordSultsFetch("ok")

	buckets := sults.StatusBuckets(contacts)
	payload := fiber.Map{"total_geral": len(contacts)}
	for key, label := range map[string]string{
		normalize.StatusOpen:  "abertos",
		normalize.StatusWon:   "ganhos",
		normalize.StatusLost:  "perdidos",
		normalize.StatusOther: "outros",
	} {
		payload[label] = statusBucket{Leads: buckets[key], Total: len(buckets[key])}
	}

	return jsonSuccess(c, payload)
}
