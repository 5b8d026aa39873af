package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"blogpress-backend/pkg/cache"
)

// Client is the cache invalidation trigger. Given tags and paths it tells the
// rendering layer to discard cached output for each of them. Tags are always
// flushed before paths: tags back the data-fetch cache, paths the rendered
// routes, and a re-rendered route must not read stale data.
//
// Each item is fire-and-forget: one failure is logged and the rest of the
// list still runs.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
	dataCache  cache.Cache
}

// Result reports how a batch went. Failed counts items, not batches; a
// partial failure is not an error.
type Result struct {
	TagsInvalidated  int `json:"tags_invalidated"`
	PathsInvalidated int `json:"paths_invalidated"`
	Failed           int `json:"failed"`
}

type invalidateRequest struct {
	Secret string `json:"secret"`
	Tag    string `json:"tag,omitempty"`
	Path   string `json:"path,omitempty"`
}

func NewClient(baseURL, secret string, dataCache cache.Cache) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		dataCache: dataCache,
	}
}

// Invalidate flushes all tags, then all paths. Within each phase items are
// independent and order is unspecified.
func (c *Client) Invalidate(ctx context.Context, tags, paths []string) Result {
	var res Result

	for _, tag := range tags {
		// Local data cache first so the renderer's refetch sees fresh rows.
		if c.dataCache != nil {
			if err := c.dataCache.DeletePattern(ctx, tag+"*"); err != nil {
				log.Warn().Err(err).Str("tag", tag).Msg("[REVALIDATE] data cache flush failed")
			}
		}

		if err := c.post(ctx, invalidateRequest{Secret: c.secret, Tag: tag}); err != nil {
			log.Warn().Err(err).Str("tag", tag).Msg("[REVALIDATE] tag invalidation failed")
			res.Failed++
			continue
		}
		res.TagsInvalidated++
	}

	for _, path := range paths {
		if err := c.post(ctx, invalidateRequest{Secret: c.secret, Path: path}); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("[REVALIDATE] path invalidation failed")
			res.Failed++
			continue
		}
		res.PathsInvalidated++
	}

	return res
}

func (c *Client) post(ctx context.Context, payload invalidateRequest) error {
	if c.baseURL == "" {
		return fmt.Errorf("revalidate: frontend base URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("revalidate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/revalidate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("revalidate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("revalidate: renderer returned status %d", resp.StatusCode)
	}

	return nil
}
