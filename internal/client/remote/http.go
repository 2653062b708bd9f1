package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/notelance/notelance/internal/common"
)

// HTTPClient implements Client against the remote HTTP API. Every request
// carries the configured API key as a bearer token and is bounded by the
// client timeout; a timed-out batch is reported as a failed request.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) SyncCategories(ctx context.Context, categories []CategoryPush) (*CategorySyncResponse, error) {
	var out CategorySyncResponse
	err := c.doJSON(ctx, http.MethodPost, "/categories/sync", CategorySyncRequest{Categories: categories}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FetchCategories(ctx context.Context) ([]RemoteCategory, error) {
	var out CategoriesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	if out.Message != MessageCategoriesFetched {
		return nil, fmt.Errorf("unexpected response message: %q", out.Message)
	}
	return out.Categories, nil
}

func (c *HTTPClient) SyncNotes(ctx context.Context, notes []NotePush) (*NoteSyncResponse, error) {
	var out NoteSyncResponse
	err := c.doJSON(ctx, http.MethodPost, "/notes/sync", NoteSyncRequest{Notes: notes}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) FetchNotes(ctx context.Context, exceptRemoteIDs []int64) ([]RemoteNote, error) {
	path := "/notes"
	if len(exceptRemoteIDs) > 0 {
		ids := make([]string, 0, len(exceptRemoteIDs))
		for _, id := range exceptRemoteIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		q := url.Values{"excepts": {strings.Join(ids, ",")}}
		path += "?" + q.Encode()
	}

	var out NotesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}
