package handlers

import (
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// StatsHandler serves the admin dashboard aggregates.
type StatsHandler struct {
	service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// RegisterRoutes registers the stats route. Admin only.
func (h *StatsHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/stats", authRequired, h.HandleGetStats)
}

// HandleGetStats returns the dashboard totals.
func (h *StatsHandler) HandleGetStats(c *fiber.Ctx) error {
	totals, err := h.service.Totals()
	if err != nil {
		log.Error().Err(err).Msg("error collecting stats")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Stats retrieved successfully",
		"stats":   totals,
	})
}
