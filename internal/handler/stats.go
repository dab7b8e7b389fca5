package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

type StatsHandler struct {
	runs *store.RunStore
}

func NewStatsHandler(runs *store.RunStore) *StatsHandler {
	return &StatsHandler{runs: runs}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.runs.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
