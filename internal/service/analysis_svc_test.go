package service

import (
	"context"
	"testing"
	"time"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/model"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

type stubAPI struct {
	resolveCalls int
	resolved     string
	record       *model.RunRecord
	gotReq       model.AnalyzeRequest
}

func (s *stubAPI) Analyze(_ context.Context, req model.AnalyzeRequest) (*model.RunRecord, error) {
	s.gotReq = req
	return s.record, nil
}

func (s *stubAPI) ResolveChannelID(_ context.Context, _ string) (string, error) {
	s.resolveCalls++
	return s.resolved, nil
}

type stubOEmbed struct {
	gotURL string
}

func (s *stubOEmbed) Lookup(_ context.Context, targetURL string) (*client.OEmbedIdentity, error) {
	s.gotURL = targetURL
	return &client.OEmbedIdentity{AuthorName: "Stub Channel"}, nil
}

func newTestRecord(channelID string, at time.Time) *model.RunRecord {
	return &model.RunRecord{
		Meta: model.MetaInfo{ChannelID: channelID, NVideos: 50, BaselineWindow: 20, GeneratedAt: at},
		Kpis: model.Kpis{VideosAnalyzed: 50, BaselineViewsPerDay: 100},
	}
}

func TestResolveChannel_PassesThroughChannelIDs(t *testing.T) {
	api := &stubAPI{resolved: "UCresolved"}
	svc := NewAnalysisService(api, &stubOEmbed{}, store.NewRunStore(t.TempDir()), nil)

	id, err := svc.ResolveChannel(context.Background(), "UCHnyfMqiRRG1u-2MsSQLbXA")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "UCHnyfMqiRRG1u-2MsSQLbXA" {
		t.Errorf("id = %q, want passthrough", id)
	}
	if api.resolveCalls != 0 {
		t.Errorf("resolve endpoint called %d times for a bare channel id", api.resolveCalls)
	}
}

func TestResolveChannel_CallsAPIForHandles(t *testing.T) {
	api := &stubAPI{resolved: "UCresolved123"}
	svc := NewAnalysisService(api, &stubOEmbed{}, store.NewRunStore(t.TempDir()), nil)

	id, err := svc.ResolveChannel(context.Background(), "@somecreator")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id != "UCresolved123" {
		t.Errorf("id = %q, want UCresolved123", id)
	}
	if api.resolveCalls != 1 {
		t.Errorf("resolve endpoint called %d times, want 1", api.resolveCalls)
	}
}

func TestRun_PersistsRecord(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	api := &stubAPI{record: newTestRecord("UCabc1234567", at)}
	runs := store.NewRunStore(t.TempDir())
	svc := NewAnalysisService(api, &stubOEmbed{}, runs, nil)

	rec, ref, err := svc.Run(context.Background(), "UCabc1234567", 0, 0)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Meta.ChannelID != "UCabc1234567" {
		t.Errorf("record channel = %q", rec.Meta.ChannelID)
	}

	// Zero knobs fall back to the API defaults.
	if api.gotReq.NVideos != model.DefaultNVideos || api.gotReq.BaselineWindow != model.DefaultBaselineWindow {
		t.Errorf("request knobs = %d/%d, want defaults", api.gotReq.NVideos, api.gotReq.BaselineWindow)
	}

	got, err := runs.Read(context.Background(), ref)
	if err != nil {
		t.Fatalf("read back persisted run: %v", err)
	}
	if !got.Meta.GeneratedAt.Equal(at) {
		t.Errorf("persisted generated_at = %v, want %v", got.Meta.GeneratedAt, at)
	}
}

func TestHistory_SinceFiltersStrictlyNewer(t *testing.T) {
	runs := store.NewRunStore(t.TempDir())
	svc := NewAnalysisService(&stubAPI{}, &stubOEmbed{}, runs, nil)
	ctx := context.Background()

	t1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{t1, t2} {
		if _, err := runs.Save(ctx, newTestRecord("UCabc1234567", ts)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := svc.History(ctx, time.Time{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}

	newer, err := svc.History(ctx, t1)
	if err != nil {
		t.Fatalf("history since: %v", err)
	}
	if len(newer) != 1 || !newer[0].GeneratedAt.Equal(t2) {
		t.Errorf("since filter returned %d items, want only the t2 run", len(newer))
	}
}

func TestIdentity_BuildsChannelURL(t *testing.T) {
	oe := &stubOEmbed{}
	svc := NewAnalysisService(&stubAPI{}, oe, store.NewRunStore(t.TempDir()), nil)

	cases := []struct{ input, wantURL string }{
		{"UCabc1234567", "https://www.youtube.com/channel/UCabc1234567"},
		{"@somecreator", "https://www.youtube.com/@somecreator"},
		{"somecreator", "https://www.youtube.com/@somecreator"},
		{"https://www.youtube.com/@x", "https://www.youtube.com/@x"},
	}
	for _, tc := range cases {
		if _, err := svc.Identity(context.Background(), tc.input); err != nil {
			t.Fatalf("identity(%q): %v", tc.input, err)
		}
		if oe.gotURL != tc.wantURL {
			t.Errorf("identity(%q) looked up %q, want %q", tc.input, oe.gotURL, tc.wantURL)
		}
	}
}
