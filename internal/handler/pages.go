package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

// PagesHandler serves the server-rendered HTML pages.
type PagesHandler struct {
	svc *service.AnalysisService
}

func NewPagesHandler(svc *service.AnalysisService) *PagesHandler {
	return &PagesHandler{svc: svc}
}

// Index handles GET / — the analyze form plus the most recent runs.
func (h *PagesHandler) Index(c fiber.Ctx) error {
	items, err := h.svc.History(c.Context(), time.Time{})
	if err != nil {
		return h.errorPage(c, fiber.StatusInternalServerError, "Could not load run history.")
	}
	if len(items) > 5 {
		items = items[:5]
	}

	return c.Render("index", fiber.Map{
		"Title":      "Creator Growth Lab",
		"RecentRuns": items,
	})
}

// AnalyzeForm handles POST /analyze — the index page form submit. On
// success it redirects to the new run's page (POST/redirect/GET).
func (h *PagesHandler) AnalyzeForm(c fiber.Ctx) error {
	input, errMsg := middleware.ValidateChannelInput(c.FormValue("channel"))
	if errMsg != "" {
		return h.errorPage(c, fiber.StatusBadRequest, errMsg)
	}

	nVideos, _ := strconv.Atoi(c.FormValue("n_videos"))
	baselineWindow, _ := strconv.Atoi(c.FormValue("baseline_window"))

	start := time.Now()
	_, ref, err := h.svc.Run(c.Context(), input, nVideos, baselineWindow)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			Metrics.AnalysesTotal.WithLabelValues("api_error").Inc()
			return h.errorPage(c, fiber.StatusBadGateway, "The analytics service could not complete the analysis.")
		}
		Metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return h.errorPage(c, fiber.StatusInternalServerError, "Analysis failed. Please try again.")
	}

	Metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	Metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	return c.Redirect().Status(fiber.StatusSeeOther).To("/runs/" + ref)
}

// Runs handles GET /runs — the full run history page.
func (h *PagesHandler) Runs(c fiber.Ctx) error {
	items, err := h.svc.History(c.Context(), time.Time{})
	if err != nil {
		return h.errorPage(c, fiber.StatusInternalServerError, "Could not load run history.")
	}

	return c.Render("runs", fiber.Map{
		"Title": "Run history",
		"Runs":  items,
	})
}

// Run handles GET /runs/:ref — the full report for one persisted run.
func (h *PagesHandler) Run(c fiber.Ctx) error {
	ref, errMsg := middleware.ValidateRunRef(c.Params("ref"))
	if errMsg != "" {
		return h.errorPage(c, fiber.StatusBadRequest, errMsg)
	}

	rec, err := h.svc.Get(c.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			Metrics.StoreReads.WithLabelValues("not_found").Inc()
			return h.errorPage(c, fiber.StatusNotFound, "That run does not exist.")
		case errors.Is(err, store.ErrUnreadableRecord):
			Metrics.StoreReads.WithLabelValues("unreadable").Inc()
			return h.errorPage(c, fiber.StatusBadGateway, "That run exists but its file cannot be read.")
		default:
			Metrics.StoreReads.WithLabelValues("error").Inc()
			return h.errorPage(c, fiber.StatusInternalServerError, "Could not load the run.")
		}
	}

	Metrics.StoreReads.WithLabelValues("ok").Inc()
	return c.Render("run", fiber.Map{
		"Title": rec.Channel.Title,
		"Ref":   ref,
		"Run":   rec,
	})
}

func (h *PagesHandler) errorPage(c fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Title":   "Something went wrong",
		"Status":  status,
		"Message": message,
	})
}
