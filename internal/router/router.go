package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mohannedbt/creator-growth-lab/internal/handler"
	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Pages   *handler.PagesHandler
	Analyze *handler.AnalyzeHandler
	Runs    *handler.RunsHandler
	Resolve *handler.ResolveHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (no rate limiting)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	analyzeLimit := middleware.NewAnalyzeRateLimiter().Handler()
	resolveLimit := middleware.NewResolveRateLimiter().Handler()
	readLimit := middleware.NewReadRateLimiter().Handler()

	// Server-rendered pages
	app.Get("/", h.Pages.Index)
	app.Post("/analyze", h.Pages.AnalyzeForm, analyzeLimit)
	app.Get("/runs", h.Pages.Runs, readLimit)
	app.Get("/runs/:ref", h.Pages.Run, readLimit)
	app.Get("/runs/:ref/download", h.Runs.Download, readLimit)

	// JSON API
	api := app.Group("/api")
	api.Post("/analyze", h.Analyze.Analyze, analyzeLimit)
	api.Get("/runs", h.Runs.List, readLimit)
	api.Get("/runs/:ref", h.Runs.Get, readLimit)
	api.Get("/resolve", h.Resolve.Resolve, resolveLimit)
	api.Get("/identity", h.Resolve.Identity, resolveLimit)
	api.Get("/stats", h.Stats.GetStats, readLimit)
}
