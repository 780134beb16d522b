// Package rest implements the collaborator interfaces over the remote
// HTTP API. Non-success responses carry RFC 7807 problem bodies which are
// mapped into domain errors.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"libris/internal/domain"
	"libris/internal/httputil"
)

// Config holds the settings shared by all REST collaborators.
type Config struct {
	BaseURL string
	Token   string // opaque bearer token; session handling lives elsewhere
	Timeout time.Duration
	Logger  *slog.Logger
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client is the shared HTTP transport. It implements TreeFetcher,
// FolderWriter, DocumentReader and Organizer.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a REST client for the collaborator API.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    hc,
		logger:  logger,
	}
}

// do issues one request. body (if non-nil) is marshaled as JSON; out (if
// non-nil) receives the decoded response body. Every request carries a
// client-generated correlation id so failures can be matched to server
// logs.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("remote request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		problem := httputil.DecodeProblem(resp.Body)
		derr := domain.FromStatusCode(resp.StatusCode, problem.Message())
		c.logger.Warn("remote returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"request_id", requestID,
			"detail", problem.Message(),
		)
		return derr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrRemote, err)
		}
	}

	return nil
}
