package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mohannedbt/creator-growth-lab/internal/client"
	"github.com/mohannedbt/creator-growth-lab/internal/model"
	"github.com/mohannedbt/creator-growth-lab/internal/store"
)

// AnalyticsAPI is the remote analytics service boundary.
type AnalyticsAPI interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.RunRecord, error)
	ResolveChannelID(ctx context.Context, urlOrHandle string) (string, error)
}

// IdentityLookup is the oEmbed boundary for channel identity previews.
type IdentityLookup interface {
	Lookup(ctx context.Context, targetURL string) (*client.OEmbedIdentity, error)
}

// AnalysisService orchestrates channel analyses: resolve the input to a
// channel id, run the analysis remotely, persist the result, and serve the
// run history back out of the store.
type AnalysisService struct {
	api    AnalyticsAPI
	oembed IdentityLookup
	runs   *store.RunStore
	cache  *CacheService
}

func NewAnalysisService(api AnalyticsAPI, oembed IdentityLookup, runs *store.RunStore, cache *CacheService) *AnalysisService {
	return &AnalysisService{api: api, oembed: oembed, runs: runs, cache: cache}
}

// ResolveChannel turns a channel id, @handle, or URL into a UC... channel id.
// Bare channel ids pass through; anything else goes through the cache, then
// the analytics API's resolve endpoint.
func (s *AnalysisService) ResolveChannel(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty channel input")
	}

	if strings.HasPrefix(input, "UC") && len(input) >= 10 {
		return input, nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetResolvedChannel(ctx, input)
		if err != nil {
			log.Printf("cache: resolve get error: %v", err)
		} else if cached != "" {
			return cached, nil
		}
	}

	channelID, err := s.api.ResolveChannelID(ctx, input)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.SetResolvedChannel(ctx, input, channelID); err != nil {
			log.Printf("cache: resolve set error: %v", err)
		}
	}
	return channelID, nil
}

// Run resolves the input, runs a full analysis remotely, and persists the
// returned record. Returns the record together with its new store reference.
func (s *AnalysisService) Run(ctx context.Context, input string, nVideos, baselineWindow int) (*model.RunRecord, string, error) {
	channelID, err := s.ResolveChannel(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("resolve channel: %w", err)
	}

	req := model.AnalyzeRequest{
		ChannelID:      channelID,
		NVideos:        nVideos,
		BaselineWindow: baselineWindow,
	}
	req.ApplyDefaults()

	rec, err := s.api.Analyze(ctx, req)
	if err != nil {
		return nil, "", err
	}

	ref, err := s.runs.Save(ctx, rec)
	if err != nil {
		return nil, "", fmt.Errorf("persist run: %w", err)
	}
	return rec, ref, nil
}

// History lists persisted runs, newest first. A non-zero since filters to
// runs generated strictly after it.
func (s *AnalysisService) History(ctx context.Context, since time.Time) ([]model.RunListItem, error) {
	items, err := s.runs.List(ctx)
	if err != nil {
		return nil, err
	}
	if since.IsZero() {
		return items, nil
	}

	filtered := make([]model.RunListItem, 0, len(items))
	for _, it := range items {
		if it.GeneratedAt.After(since) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// Get returns the full record for a store reference.
func (s *AnalysisService) Get(ctx context.Context, ref string) (*model.RunRecord, error) {
	return s.runs.Read(ctx, ref)
}

// Identity fetches a channel identity preview via oEmbed, cache-aside.
func (s *AnalysisService) Identity(ctx context.Context, input string) (*client.OEmbedIdentity, error) {
	if s.cache != nil {
		cached, err := s.cache.GetIdentity(ctx, input)
		if err != nil {
			log.Printf("cache: identity get error: %v", err)
		} else if cached != nil {
			var id client.OEmbedIdentity
			if err := json.Unmarshal(cached, &id); err == nil {
				return &id, nil
			}
		}
	}

	id, err := s.oembed.Lookup(ctx, channelURL(input))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetIdentity(ctx, input, id); err != nil {
			log.Printf("cache: identity set error: %v", err)
		}
	}
	return id, nil
}

// channelURL builds the YouTube URL oEmbed expects from whatever form the
// user supplied.
func channelURL(input string) string {
	input = strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		return input
	case strings.HasPrefix(input, "UC"):
		return "https://www.youtube.com/channel/" + input
	case strings.HasPrefix(input, "@"):
		return "https://www.youtube.com/" + input
	default:
		return "https://www.youtube.com/@" + input
	}
}
