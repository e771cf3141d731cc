// Package engine is the client for the external route-optimization service.
// The service is a black box to this backend: it receives the plan request
// DTO and answers with either a preview summary or full per-worker
// schedules. Nothing here is retried; one request, one answer or one error.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fieldops/globals"
	"fieldops/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL, falling back to the
// ROUTE_ENGINE_URL environment value.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = globals.EnvOr("ROUTE_ENGINE_URL", "http://localhost:9090")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Preview asks the engine for a scheduling preview without persisting
// anything.
func (c *Client) Preview(ctx context.Context, req models.PreviewRequest) (models.PreviewResponse, error) {
	var resp models.PreviewResponse
	err := c.post(ctx, "/preview", req, &resp)
	return resp, err
}

// Generate asks the engine for the full day-by-day, worker-by-worker
// schedule.
func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error) {
	var resp models.GenerateResponse
	err := c.post(ctx, "/generate", req, &resp)
	return resp, err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("engine: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("engine: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("engine: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("engine: %s returned %d: %s", path, resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("engine: decode %s response: %w", path, err)
	}
	return nil
}
