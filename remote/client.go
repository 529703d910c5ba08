/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/errors"
)

// accessKeyHeader carries the optional access key on every request.
const accessKeyHeader = "x-functions-key"

// Client issues JSON and multipart requests against the remote resource
// API. It owns transport concerns only; resource semantics live in the
// typed stores built on top of it.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient validates the base address and builds a client. The HTTP
// client carries no request timeout of its own; a surrounding
// request-timeout policy belongs to the caller's HTTP boundary.
func NewClient(cfg config.RemoteConfig, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.NewValidationError("baseUrl", "must not be empty")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errors.NewValidationError("baseUrl", err.Error())
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{},
		log:     log,
	}, nil
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(httpc *http.Client) *Client {
	c.httpc = httpc
	return c
}

// endpoint joins escaped path segments onto the base address.
func (c *Client) endpoint(segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, c.baseURL)
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// do issues one request. Transport failures come back as BackendError with
// the operation and target path; status handling is the caller's job.
func (c *Client) do(ctx context.Context, op, method, target string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.NewBackendError(op, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set(accessKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("remote request failed",
			slog.String("op", op), slog.String("target", target), slog.Any("error", err))
		return nil, errors.NewBackendError(op, target, err)
	}
	c.log.Debug("remote request",
		slog.String("op", op), slog.String("target", target),
		slog.Int("status", resp.StatusCode), slog.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// checkStatus turns any non-2xx response into a BackendError carrying the
// HTTP status and body. The caller must have handled 404 already when
// absence is not a failure.
func checkStatus(op, target string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	return errors.NewBackendStatusError(op, target, resp.StatusCode, strings.TrimSpace(string(body)))
}

// decodeJSON reads a JSON response body into out.
func decodeJSON(op, target string, resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewBackendError(op, target, err)
	}
	return nil
}
