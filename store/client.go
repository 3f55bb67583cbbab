package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient talks to the hosted record store over its REST API. Every call
// waits on a shared rate limiter first; the store enforces a strict request
// budget and the engine issues its mutations sequentially on top of this.
type HTTPClient struct {
	baseURL string
	token   string
	version string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPClient builds a store client. ratePerSec bounds outgoing requests;
// zero or negative falls back to the store's documented 3 req/s budget.
func NewHTTPClient(baseURL, token, version string, ratePerSec float64, logger *zap.Logger) *HTTPClient {
	if ratePerSec <= 0 {
		ratePerSec = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		version: version,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:  logger,
	}
}

type rowPage struct {
	Results    []Row  `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type childBlockWire struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	CreatedTime    string `json:"created_time"`
	ChildContainer *struct {
		Title string `json:"title"`
	} `json:"child_database"`
	ChildPage *struct {
		Title string `json:"title"`
	} `json:"child_page"`
}

type childPage struct {
	Results    []childBlockWire `json:"results"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor"`
}

type created struct {
	ID string `json:"id"`
}

func (c *HTTPClient) RetrieveContainer(ctx context.Context, id string) (*Container, error) {
	var out Container
	if err := c.do(ctx, http.MethodGet, "/databases/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RetrievePage(ctx context.Context, id string) (*Row, error) {
	var out Row
	if err := c.do(ctx, http.MethodGet, "/pages/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) QueryContainer(ctx context.Context, id string, q Query) ([]Row, error) {
	var out rowPage
	if err := c.do(ctx, http.MethodPost, "/databases/"+id+"/query", queryBody(q, ""), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *HTTPClient) QueryAllContainerRows(ctx context.Context, id string) ([]Row, error) {
	var rows []Row
	cursor := ""
	for {
		var out rowPage
		if err := c.do(ctx, http.MethodPost, "/databases/"+id+"/query", queryBody(Query{}, cursor), &out); err != nil {
			return nil, err
		}
		rows = append(rows, out.Results...)
		if !out.HasMore || out.NextCursor == "" {
			return rows, nil
		}
		cursor = out.NextCursor
	}
}

func (c *HTTPClient) ListChildren(ctx context.Context, pageID string) ([]ChildBlock, error) {
	var children []ChildBlock
	cursor := ""
	for {
		path := "/blocks/" + pageID + "/children?page_size=100"
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		var out childPage
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		for _, block := range out.Results {
			child := ChildBlock{ID: block.ID, Type: block.Type, CreatedTime: block.CreatedTime}
			switch {
			case block.ChildContainer != nil:
				child.Title = block.ChildContainer.Title
			case block.ChildPage != nil:
				child.Title = block.ChildPage.Title
			}
			children = append(children, child)
		}
		if !out.HasMore || out.NextCursor == "" {
			return children, nil
		}
		cursor = out.NextCursor
	}
}

func (c *HTTPClient) CreateContainer(ctx context.Context, parentID, title string, schema map[string]FieldSchema) (string, error) {
	body := map[string]any{
		"parent":     map[string]string{"type": "page_id", "page_id": parentID},
		"title":      []RichText{{Type: "text", Text: &TextContent{Content: title}}},
		"properties": schema,
	}
	var out created
	if err := c.do(ctx, http.MethodPost, "/databases", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) CreatePage(ctx context.Context, parentID, title string) (string, error) {
	body := map[string]any{
		"parent": map[string]string{"type": "page_id", "page_id": parentID},
		"properties": map[string]FieldValue{
			"title": TitleValue(title),
		},
	}
	var out created
	if err := c.do(ctx, http.MethodPost, "/pages", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) CreateRow(ctx context.Context, containerID string, fields map[string]FieldValue) (string, error) {
	body := map[string]any{
		"parent":     map[string]string{"type": "database_id", "database_id": containerID},
		"properties": fields,
	}
	var out created
	if err := c.do(ctx, http.MethodPost, "/pages", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) UpdateRow(ctx context.Context, id string, fields map[string]FieldValue) error {
	body := map[string]any{"properties": fields}
	return c.do(ctx, http.MethodPatch, "/pages/"+id, body, nil)
}

func (c *HTTPClient) UpdateContainerSchema(ctx context.Context, id string, patch map[string]FieldSchema) error {
	body := map[string]any{"properties": patch}
	return c.do(ctx, http.MethodPatch, "/databases/"+id, body, nil)
}

func (c *HTTPClient) ArchiveRow(ctx context.Context, id string, archived bool) error {
	body := map[string]any{"archived": archived}
	return c.do(ctx, http.MethodPatch, "/pages/"+id, body, nil)
}

func (c *HTTPClient) RetrieveComments(ctx context.Context, blockID string) (int, error) {
	count := 0
	cursor := ""
	for {
		path := "/comments?block_id=" + url.QueryEscape(blockID) + "&page_size=100"
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		var out struct {
			Results    []json.RawMessage `json:"results"`
			HasMore    bool              `json:"has_more"`
			NextCursor string            `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return 0, err
		}
		count += len(out.Results)
		if !out.HasMore || out.NextCursor == "" {
			return count, nil
		}
		cursor = out.NextCursor
	}
}

func queryBody(q Query, cursor string) map[string]any {
	body := map[string]any{}
	if q.TitleFilterField != "" {
		body["filter"] = map[string]any{
			"property": q.TitleFilterField,
			"title":    map[string]string{"equals": q.TitleFilterEquals},
		}
	}
	if len(q.Sorts) > 0 {
		sorts := make([]map[string]string, 0, len(q.Sorts))
		for _, s := range q.Sorts {
			direction := "ascending"
			if s.Descending {
				direction = "descending"
			}
			sorts = append(sorts, map[string]string{"property": s.Field, "direction": direction})
		}
		body["sorts"] = sorts
	}
	if q.PageSize > 0 {
		body["page_size"] = q.PageSize
	}
	if cursor != "" {
		body["start_cursor"] = cursor
	}
	return body
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("store: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("store: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("store: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &apiErr)
		if resp.StatusCode == http.StatusNotFound || apiErr.Code == "object_not_found" {
			return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
		}
		c.logger.Warn("store request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code))
		return &RequestError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("store: decode response: %w", err)
	}
	return nil
}
