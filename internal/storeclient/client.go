// Package storeclient talks to the hosted relational backend through its
// PostgREST-style data API. Every call is a single network round trip;
// there is no buffering and no transaction spanning calls.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Error carries the upstream rejection detail for a failed data API call.
// The detail is meant for the audit log and operator debugging, not for
// external callers.
type Error struct {
	Table      string
	Op         string
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Op, e.Table, e.StatusCode, e.Detail)
}

type Client struct {
	restURL    string
	serviceKey string
	httpClient *http.Client
}

// New builds a client for the data API rooted at baseURL. serviceKey is
// sent as both the apikey header and bearer credential, per the backend's
// auth contract.
func New(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		restURL:    strings.TrimRight(baseURL, "/") + "/rest/v1",
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Insert writes one row and returns it as echoed by the backend.
func (c *Client) Insert(ctx context.Context, table string, record any) (map[string]any, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal %s record: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL+"/"+table, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build insert request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=representation")

	rows, err := c.do(req, table, "insert")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Table: table, Op: "insert", StatusCode: http.StatusOK, Detail: "backend returned no representation"}
	}
	return rows[0], nil
}

// Update applies a partial update to the row with the given id.
func (c *Client) Update(ctx context.Context, table, id string, patch map[string]any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal %s patch: %w", table, err)
	}

	endpoint := fmt.Sprintf("%s/%s?id=eq.%s", c.restURL, table, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	_, err = c.do(req, table, "update")
	return err
}

// Select reads rows matching the given column filters. Filter values are
// compared with eq.
func (c *Client) Select(ctx context.Context, table, columns string, filters map[string]string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("select", columns)
	for column, value := range filters {
		query.Set(column, "eq."+value)
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.restURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build select request: %w", err)
	}
	c.setHeaders(req)

	return c.do(req, table, "select")
}

// Delete removes rows matching the filters and returns the removed rows so
// callers can report how many were cleaned up.
func (c *Client) Delete(ctx context.Context, table string, filters map[string]string) ([]map[string]any, error) {
	query := url.Values{}
	for column, value := range filters {
		query.Set(column, "eq."+value)
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.restURL, table, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build delete request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "return=representation")

	return c.do(req, table, "delete")
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func (c *Client) do(req *http.Request, table, op string) ([]map[string]any, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &Error{
			Table:      table,
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(detail)),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		// PATCH responses can come back as a bare object rather than an
		// array depending on backend version.
		var single map[string]any
		if err2 := json.Unmarshal(body, &single); err2 == nil {
			return []map[string]any{single}, nil
		}
		return nil, fmt.Errorf("decode %s response: %w", table, err)
	}
	return rows, nil
}
