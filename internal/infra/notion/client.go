// Package notion implements the document-store client used as the system
// of record: it reads channel posts and their content blocks, mutates
// publication state, and creates newsletter pages.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"notigram/internal/config"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"

	// The API allows an average of 3 requests per second per integration.
	requestsPerSecond = 3

	// pageSize is the page size used for every paginated request.
	pageSize = 100
)

// Client is a thin REST client for the document store. All methods respect
// context cancellation and are rate limited to the store's documented
// request budget.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	baseURL              string
	token                string
	channelDatabaseID    string
	newsletterDatabaseID string
}

// NewClient builds a Client from configuration.
func NewClient(cfg config.NotionConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient:           &http.Client{Timeout: cfg.Timeout},
		limiter:              rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:               logger,
		baseURL:              defaultBaseURL,
		token:                cfg.Token,
		channelDatabaseID:    cfg.ChannelDatabaseID,
		newsletterDatabaseID: cfg.NewsletterDatabaseID,
	}
}

// RequestError is a non-2xx response from the document store.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("document store request failed: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// do performs one rate-limited API request and decodes the response into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &apiErr)
		return &RequestError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getPage retrieves a single page by ID.
func (c *Client) getPage(ctx context.Context, pageID string) (*page, error) {
	var p page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageID, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// queryAll runs a database query and follows the continuation cursor until
// the store reports no further pages. There is no assumed maximum bound.
func (c *Client) queryAll(ctx context.Context, databaseID string, query databaseQuery) ([]page, error) {
	var all []page
	query.PageSize = pageSize

	for {
		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", query, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)

		if !resp.HasMore {
			return all, nil
		}
		query.StartCursor = resp.NextCursor
	}
}

// queryOnce runs a single bounded database query without following cursors.
func (c *Client) queryOnce(ctx context.Context, databaseID string, query databaseQuery) ([]page, error) {
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// getAllChildBlocks accumulates every child block of a page, following the
// continuation cursor until exhaustion.
func (c *Client) getAllChildBlocks(ctx context.Context, pageID string) ([]block, error) {
	var all []block
	cursor := ""

	for {
		path := fmt.Sprintf("/blocks/%s/children?page_size=%d", pageID, pageSize)
		if cursor != "" {
			path += "&start_cursor=" + cursor
		}

		var resp blockListResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)

		if !resp.HasMore {
			return all, nil
		}
		cursor = resp.NextCursor
	}
}

// appendChildBlocks appends blocks to the given page.
func (c *Client) appendChildBlocks(ctx context.Context, pageID string, children []block) error {
	return c.do(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", appendChildrenRequest{Children: children}, nil)
}

// updateProperties patches page properties.
func (c *Client) updateProperties(ctx context.Context, pageID string, props map[string]property) error {
	return c.do(ctx, http.MethodPatch, "/pages/"+pageID, updatePageRequest{Properties: props}, nil)
}
