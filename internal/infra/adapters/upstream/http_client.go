// File: internal/infra/adapters/upstream/http_client.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"image-gateway/internal/domain/ports/adapter"
)

// Compile-time assurance this client satisfies the ports
var (
	_ adapter.UpstreamClient  = (*Client)(nil)
	_ adapter.ArtifactFetcher = (*Client)(nil)
)

// Client speaks the providers' submit/poll task protocol over plain HTTP.
// Stateless; one instance serves all requests.
type Client struct {
	base   string
	client *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type submitPayload struct {
	OK      bool   `json:"ok"`
	Task    string `json:"task"`
	Message string `json:"message"`
}

func (c *Client) Submit(ctx context.Context, endpoint, prompt, variant string) (*adapter.SubmitAck, error) {
	q := url.Values{}
	q.Set("prompt", prompt)
	if variant != "" {
		q.Set("model", variant)
	}
	u := c.base + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &adapter.SubmitAck{OK: false, Message: fmt.Sprintf("upstream http %d", resp.StatusCode)}, nil
	}
	var payload submitPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode submit ack: %w", err)
	}
	return &adapter.SubmitAck{OK: payload.OK, TaskHandle: payload.Task, Message: payload.Message}, nil
}

type pollPayload struct {
	Status  string `json:"status"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (c *Client) Poll(ctx context.Context, taskHandle string) (*adapter.PollResult, error) {
	// The handle is either an absolute status URL or a bare task id.
	u := taskHandle
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.base + "/status?task=" + url.QueryEscape(taskHandle)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("poll http %d", resp.StatusCode)
	}
	var payload pollPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode poll result: %w", err)
	}

	res := &adapter.PollResult{URL: payload.URL, Message: payload.Message}
	switch payload.Status {
	case "done":
		res.Status = adapter.PollDone
	case "error":
		res.Status = adapter.PollError
	default:
		res.Status = adapter.PollPending
	}
	return res, nil
}

func (c *Client) Fetch(ctx context.Context, artifactURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifactURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch http %d", resp.StatusCode)
	}
	return resp.Body, nil
}
