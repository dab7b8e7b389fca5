package main

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/config"
	"github.com/mohannedbt/creator-growth-lab/internal/handler"
	"github.com/mohannedbt/creator-growth-lab/internal/middleware"
	"github.com/mohannedbt/creator-growth-lab/internal/router"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
	"github.com/mohannedbt/creator-growth-lab/internal/view"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "cgl-web")

	runs := store.NewRunStore(cfg.ResultsDir)
	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	api := client.NewAnalyticsClient(cfg.AnalyticsAPIURL)
	oembed := client.NewOEmbedClient()
	svc := service.NewAnalysisService(api, oembed, runs, cache)

	handler.InitMetrics(runs)

	engine, err := view.NewEngine()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Creator Growth Lab",
		ServerHeader: "CreatorGrowthLab",
		Views:        engine,
	})

	h := &router.Handlers{
		Pages:   handler.NewPagesHandler(svc),
		Analyze: handler.NewAnalyzeHandler(svc),
		Runs:    handler.NewRunsHandler(svc, runs),
		Resolve: handler.NewResolveHandler(svc),
		Stats:   handler.NewStatsHandler(runs),
		Health:  handler.NewHealthHandler(runs, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("Creator Growth Lab front-end starting on :%s (env=%s, api=%s, results=%s)",
		cfg.Port, cfg.Environment, cfg.AnalyticsAPIURL, cfg.ResultsDir)
	log.Fatal(app.Listen(":" + cfg.Port))
}
