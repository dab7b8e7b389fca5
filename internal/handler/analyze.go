package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
)

type AnalyzeHandler struct {
	svc *service.AnalysisService
}

func NewAnalyzeHandler(svc *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// analyzeBody is the JSON body for POST /api/analyze. Channel accepts an
// id, @handle, or URL; resolution happens server-side.
type analyzeBody struct {
	Channel        string `json:"channel"`
	NVideos        int    `json:"n_videos"`
	BaselineWindow int    `json:"baseline_window"`
}

// Analyze handles POST /api/analyze
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var body analyzeBody
	if err := c.Bind().JSON(&body); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	input, errMsg := middleware.ValidateChannelInput(body.Channel)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	start := time.Now()
	rec, ref, err := h.svc.Run(c.Context(), input, body.NVideos, body.BaselineWindow)
	if err != nil {
		return analysisError(c, err)
	}

	Metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	Metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ref": ref,
		"run": rec,
	})
}

// analysisError maps a failed analysis to an API response, counting the
// outcome for metrics.
func analysisError(c fiber.Ctx, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		Metrics.AnalysesTotal.WithLabelValues("api_error").Inc()
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ANALYSIS_REJECTED", "The analytics service rejected the request")
		}
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "ANALYTICS_UNAVAILABLE", "The analytics service is unavailable")
	}

	Metrics.AnalysesTotal.WithLabelValues("error").Inc()
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Analysis failed")
}
