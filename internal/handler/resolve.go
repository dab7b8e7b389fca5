package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
)

type ResolveHandler struct {
	svc *service.AnalysisService
}

func NewResolveHandler(svc *service.AnalysisService) *ResolveHandler {
	return &ResolveHandler{svc: svc}
}

// Resolve handles GET /api/resolve?input=
// Accepts a UC... id, @handle, or channel URL and returns the channel id.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	input, errMsg := middleware.ValidateChannelInput(fiber.Query[string](c, "input"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	channelID, err := h.svc.ResolveChannel(c.Context(), input)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Could not resolve input to a channel")
	}

	return c.JSON(fiber.Map{"channel_id": channelID})
}

// Identity handles GET /api/identity?input=
// Returns the oEmbed identity snapshot (title, URL, thumbnail) for a channel.
func (h *ResolveHandler) Identity(c fiber.Ctx) error {
	input, errMsg := middleware.ValidateChannelInput(fiber.Query[string](c, "input"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	id, err := h.svc.Identity(c.Context(), input)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Could not look up channel identity")
	}

	return c.JSON(id)
}
