package handler

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

type RunsHandler struct {
	svc  *service.AnalysisService
	runs *store.RunStore
}

func NewRunsHandler(svc *service.AnalysisService, runs *store.RunStore) *RunsHandler {
	return &RunsHandler{svc: svc, runs: runs}
}

// List handles GET /api/runs?since=TIMESTAMP
// Without since it returns the full history, newest first; with since it
// returns only runs generated strictly after that instant.
func (h *RunsHandler) List(c fiber.Ctx) error {
	var since time.Time
	if sinceStr := fiber.Query[string](c, "since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", "since must be a valid RFC3339 timestamp")
		}
		since = parsed
	}

	items, err := h.svc.History(c.Context(), since)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list runs")
	}

	return c.JSON(fiber.Map{
		"runs":  items,
		"count": len(items),
	})
}

// Get handles GET /api/runs/:ref
func (h *RunsHandler) Get(c fiber.Ctx) error {
	ref, errMsg := middleware.ValidateRunRef(c.Params("ref"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	rec, err := h.svc.Get(c.Context(), ref)
	if err != nil {
		return runReadError(c, err)
	}

	Metrics.StoreReads.WithLabelValues("ok").Inc()
	return c.JSON(rec)
}

// Download handles GET /runs/:ref/download
// Serves the stored JSON file as-is, after verifying it decodes.
func (h *RunsHandler) Download(c fiber.Ctx) error {
	ref, errMsg := middleware.ValidateRunRef(c.Params("ref"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if _, err := h.svc.Get(c.Context(), ref); err != nil {
		return runReadError(c, err)
	}

	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", "attachment; filename="+ref)
	return c.SendFile(filepath.Join(h.runs.Dir(), ref))
}

// runReadError maps store read failures to API responses.
func runReadError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		Metrics.StoreReads.WithLabelValues("not_found").Inc()
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Run not found")
	case errors.Is(err, store.ErrUnreadableRecord):
		Metrics.StoreReads.WithLabelValues("unreadable").Inc()
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UNREADABLE_RECORD", "Stored run exists but cannot be decoded")
	default:
		Metrics.StoreReads.WithLabelValues("error").Inc()
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read run")
	}
}
