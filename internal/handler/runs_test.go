package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/model"
	"github.com/mohannedbt/creator-growth-lab/internal/service"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

func TestMain(m *testing.M) {
	// Collectors are package globals registered once at startup.
	InitMetrics(nil)
	os.Exit(m.Run())
}

type noopAPI struct{}

func (noopAPI) Analyze(context.Context, model.AnalyzeRequest) (*model.RunRecord, error) {
	return nil, nil
}
func (noopAPI) ResolveChannelID(context.Context, string) (string, error) {
	return "", nil
}

type noopOEmbed struct{}

func (noopOEmbed) Lookup(context.Context, string) (*client.OEmbedIdentity, error) {
	return nil, nil
}

func newTestApp(t *testing.T) (*fiber.App, *store.RunStore) {
	t.Helper()

	runs := store.NewRunStore(t.TempDir())
	svc := service.NewAnalysisService(noopAPI{}, noopOEmbed{}, runs, nil)
	h := NewRunsHandler(svc, runs)
	stats := NewStatsHandler(runs)

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/runs", h.List)
	api.Get("/runs/:ref", h.Get)
	api.Get("/stats", stats.GetStats)
	return app, runs
}

func seedRun(t *testing.T, runs *store.RunStore, channelID string, at time.Time) string {
	t.Helper()
	ref, err := runs.Save(context.Background(), &model.RunRecord{
		Meta: model.MetaInfo{ChannelID: channelID, NVideos: 50, BaselineWindow: 20, GeneratedAt: at},
		Kpis: model.Kpis{VideosAnalyzed: 50, BaselineViewsPerDay: 100},
	})
	require.NoError(t, err)
	return ref
}

func TestRunsList(t *testing.T) {
	app, runs := newTestApp(t)
	seedRun(t, runs, "UCabc1234567", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	seedRun(t, runs, "UCabc1234567", time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Runs  []model.RunListItem `json:"runs"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 2, body.Count)
	assert.True(t, body.Runs[0].GeneratedAt.After(body.Runs[1].GeneratedAt), "newest first")
}

func TestRunsList_SinceFilter(t *testing.T) {
	app, runs := newTestApp(t)
	seedRun(t, runs, "UCabc1234567", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	seedRun(t, runs, "UCabc1234567", time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs?since=2025-03-01T18:00:00Z", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/runs?since=not-a-time", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRunsGet(t *testing.T) {
	app, runs := newTestApp(t)
	ref := seedRun(t, runs, "UCabc1234567", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs/"+ref, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rec model.RunRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "UCabc1234567", rec.Meta.ChannelID)
}

func TestRunsGet_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs/UCmissing123_20250301T120000Z.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRunsGet_RejectsMalformedRef(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/runs/secrets.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStats(t *testing.T) {
	app, runs := newTestApp(t)
	seedRun(t, runs, "UCalpha123456", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	seedRun(t, runs, "UCbeta1234567", time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/stats", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats model.StoreStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 2, stats.DistinctChannels)
}
