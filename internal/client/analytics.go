package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mohannedbt/creator-growth-lab/internal/model"
)

// APIError is a non-200 response from the analytics API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analytics api error %d: %s", e.StatusCode, e.Body)
}

// AnalyticsClient talks to the Creator Growth Lab analytics API, which does
// the actual channel analysis (KPIs, drivers, topic modeling) remotely.
type AnalyticsClient struct {
	baseURL string
	http    *http.Client
}

// NewAnalyticsClient creates a client for the given base URL. Analysis runs
// fetch and model up to 200 videos server-side, so the timeout is generous.
func NewAnalyticsClient(baseURL string) *AnalyticsClient {
	return &AnalyticsClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// Analyze runs a channel analysis via POST /analyze/channel and returns the
// full run record.
func (c *AnalyticsClient) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.RunRecord, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze/channel", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var rec model.RunRecord
	if err := c.do(httpReq, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ResolveChannelID resolves a channel URL, @handle, or custom name to a
// UC... channel id via GET /resolve/channel-id.
func (c *AnalyticsClient) ResolveChannelID(ctx context.Context, urlOrHandle string) (string, error) {
	u := c.baseURL + "/resolve/channel-id?url_or_handle=" + url.QueryEscape(urlOrHandle)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		ChannelID string `json:"channel_id"`
	}
	if err := c.do(httpReq, &resp); err != nil {
		return "", err
	}
	if resp.ChannelID == "" {
		return "", fmt.Errorf("resolve returned empty channel_id for %q", urlOrHandle)
	}
	return resp.ChannelID, nil
}

func (c *AnalyticsClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("analytics api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Keep enough of the body to diagnose, not enough to flood logs.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode analytics api response: %w", err)
	}
	return nil
}
