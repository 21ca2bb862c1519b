// Vesparec - Real-time Vector Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vesparec

package vespa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vesparec/internal/config"
)

const (
	searchPath = "/search/"
	healthPath = "/state/v1/health"

	// maxErrorBodySize limits how much of an error response is read.
	maxErrorBodySize = 64 * 1024
)

// Request is a single search request.
type Request struct {
	YQL  string
	Hits int
	// Ranking is the rank profile; empty uses the schema default.
	Ranking string
	// Inputs binds query tensors by name, e.g. "q" -> input.query(q).
	Inputs map[string][]float32
	// Summary selects a document summary class.
	Summary string
}

// body renders the request as the /search/ POST body.
func (r *Request) body() map[string]any {
	body := map[string]any{
		"yql":                 r.YQL,
		"presentation.format": "json",
	}
	if r.Hits > 0 {
		body["hits"] = r.Hits
	}
	if r.Ranking != "" {
		body["ranking"] = r.Ranking
	}
	if r.Summary != "" {
		body["summary"] = r.Summary
	}
	for name, vec := range r.Inputs {
		body["input.query("+name+")"] = vec
	}
	return body
}

// Hit is one search result.
type Hit struct {
	ID        string         `json:"id"`
	Relevance float64        `json:"relevance"`
	Source    string         `json:"source,omitempty"`
	Fields    map[string]any `json:"fields"`
}

// Result is a decoded search response.
type Result struct {
	TotalCount int
	Hits       []Hit
}

// ErrorMessage is one entry of root.errors.
type ErrorMessage struct {
	Code    int    `json:"code"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

// QueryError reports a rejected or failed search.
type QueryError struct {
	StatusCode int
	Messages   []ErrorMessage
	Body       string
}

func (e *QueryError) Error() string {
	if len(e.Messages) > 0 {
		m := e.Messages[0]
		return fmt.Sprintf("vespa: status %d: %s: %s", e.StatusCode, m.Summary, m.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("vespa: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("vespa: status %d", e.StatusCode)
}

type searchResponse struct {
	Root struct {
		Fields struct {
			TotalCount int `json:"totalCount"`
		} `json:"fields"`
		Errors   []ErrorMessage `json:"errors"`
		Children []Hit          `json:"children"`
	} `json:"root"`
}

// Client talks to a Vespa container cluster. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[any]
}

// NewClient creates a client for cfg.
func NewClient(cfg *config.VespaConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.MaxIdleConns > 0 {
		transport.MaxIdleConns = cfg.MaxIdleConns
		transport.MaxIdleConnsPerHost = cfg.MaxIdleConns
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL(), "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		cb: newCircuitBreaker(cfg.Breaker),
	}
}

// BaseURL returns the endpoint the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query executes a search request.
func (c *Client) Query(ctx context.Context, req *Request) (*Result, error) {
	result, err := c.execute(func() (any, error) {
		return c.doQuery(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	res, ok := result.(*Result)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return res, nil
}

func (c *Client) doQuery(ctx context.Context, req *Request) (*Result, error) {
	payload, err := json.Marshal(req.body())
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(decoded.Root.Errors) > 0 {
		return nil, &QueryError{StatusCode: resp.StatusCode, Messages: decoded.Root.Errors}
	}

	return &Result{
		TotalCount: decoded.Root.Fields.TotalCount,
		Hits:       decoded.Root.Children,
	}, nil
}

// decodeError builds a QueryError from a non-2xx response, keeping the
// structured messages when the body carries them.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	qerr := &QueryError{StatusCode: resp.StatusCode}
	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err == nil && len(decoded.Root.Errors) > 0 {
		qerr.Messages = decoded.Root.Errors
	} else {
		qerr.Body = strings.TrimSpace(string(body))
	}
	return qerr
}

// Ping checks the container health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.execute(func() (any, error) {
		return nil, c.doPing(ctx)
	})
	return err
}

func (c *Client) doPing(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	var health struct {
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err == nil && health.Status.Code != "" && health.Status.Code != "up" {
		return fmt.Errorf("vespa status %q", health.Status.Code)
	}
	return nil
}
