package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultOEmbedBase = "https://www.youtube.com/oembed"

// OEmbedIdentity is the lightweight channel identity YouTube's oEmbed
// endpoint exposes without an API key.
type OEmbedIdentity struct {
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedClient fetches channel identity snapshots from YouTube's oEmbed
// endpoint, used to preview a channel before a full analysis exists.
type OEmbedClient struct {
	baseURL string
	http    *http.Client
}

func NewOEmbedClient() *OEmbedClient {
	return &OEmbedClient{
		baseURL: defaultOEmbedBase,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewOEmbedClientWithBase overrides the endpoint (for tests).
func NewOEmbedClientWithBase(baseURL string) *OEmbedClient {
	c := NewOEmbedClient()
	c.baseURL = baseURL
	return c
}

// Lookup fetches the identity behind a channel or video URL.
func (c *OEmbedClient) Lookup(ctx context.Context, targetURL string) (*OEmbedIdentity, error) {
	u := c.baseURL + "?format=json&url=" + url.QueryEscape(targetURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed lookup failed: status %d", resp.StatusCode)
	}

	var id OEmbedIdentity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode oembed response: %w", err)
	}
	return &id, nil
}
