// Package apify is a thin client for the Apify actor platform, used as
// the remote rendering tier: a URL-scoped extraction job is submitted to
// an actor with a category-specific memory and time budget, awaited, and
// its first dataset record consumed. The platform itself is an opaque
// collaborator; nothing here knows how the rendering works.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/veritext/veritext"
)

// DefaultBaseURL is the Apify API endpoint.
const DefaultBaseURL = "https://api.apify.com"

// DefaultPollInterval is how often a submitted run is polled for
// completion.
const DefaultPollInterval = 2 * time.Second

// Terminal run statuses reported by the platform.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

// Run is the handle returned for a submitted actor job.
type Run struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// Finished reports whether the run reached a terminal status.
func (r *Run) Finished() bool {
	switch r.Status {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

// Client calls the Apify HTTP API.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	pollInterval time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, primarily for testing.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPollInterval overrides how often runs are polled.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// NewClient creates a new Client authenticating with the given API token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		token:        token,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the {"data": ...} wrapper the API puts around every object.
type envelope struct {
	Data Run `json:"data"`
}

// StartRun submits an actor run for the given input with a memory ceiling
// and a server-side timeout. The memory ceiling doubles as admission
// control against the platform's shared worker pool.
func (c *Client) StartRun(ctx context.Context, actorID string, input any, memoryMB int, timeout time.Duration) (*Run, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, veritext.Errorf(veritext.EINTERNAL, "marshal actor input: %v", err)
	}

	q := url.Values{}
	if memoryMB > 0 {
		q.Set("memory", strconv.Itoa(memoryMB))
	}
	if timeout > 0 {
		q.Set("timeout", strconv.Itoa(int(timeout.Seconds())))
	}
	endpoint := fmt.Sprintf("%s/v2/acts/%s/runs?%s", c.baseURL, url.PathEscape(actorID), q.Encode())

	var env envelope
	if err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), &env); err != nil {
		return nil, err
	}
	if env.Data.ID == "" {
		return nil, veritext.Errorf(veritext.EREMOTE, "actor %s run submission returned no run ID", actorID)
	}
	return &env.Data, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (*Run, error) {
	endpoint := fmt.Sprintf("%s/v2/actor-runs/%s", c.baseURL, url.PathEscape(runID))

	var env envelope
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// WaitForRun polls a run until it reaches a terminal status or the wait
// budget runs out. The context aborts the wait immediately.
func (c *Client) WaitForRun(ctx context.Context, runID string, wait time.Duration) (*Run, error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		run, err := c.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run.Finished() {
			return run, nil
		}
		if time.Now().After(deadline) {
			return nil, veritext.Errorf(veritext.EREMOTE, "rendering job %s did not finish within %s", runID, wait)
		}

		select {
		case <-ctx.Done():
			return nil, veritext.Errorf(veritext.EREMOTE, "rendering job %s canceled: %v", runID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// DatasetItems retrieves the output records of a run's default dataset,
// in insertion order.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/v2/datasets/%s/items?format=json", c.baseURL, url.PathEscape(datasetID))

	var items []map[string]any
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// do executes one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return veritext.Errorf(veritext.EINTERNAL, "create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return veritext.Errorf(veritext.EREMOTE, "rendering service request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return veritext.Errorf(veritext.EREMOTE, "read rendering service response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return veritext.Errorf(veritext.EREMOTE, "rendering service authentication failed: HTTP %d", resp.StatusCode)
		case http.StatusTooManyRequests:
			return veritext.Errorf(veritext.EREMOTE, "rendering service rate limited: HTTP %d", resp.StatusCode)
		default:
			return veritext.Errorf(veritext.EREMOTE, "rendering service HTTP %d: %s", resp.StatusCode, truncateBody(respBody))
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return veritext.Errorf(veritext.EREMOTE, "parse rendering service response: %v", err)
	}
	return nil
}

// truncateBody keeps error messages readable when the platform returns a
// long HTML error page.
func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
