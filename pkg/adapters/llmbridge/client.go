package llmbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fabulark/fabula/pkg/ports"
)

// ErrGeneration wraps every failure talking to the generation service, so
// callers can treat network errors, bad statuses and unparseable bodies
// uniformly.
var ErrGeneration = fmt.Errorf("generation service failure")

// Client implements ports.TextGenerator against the HTTP generation bridge.
// Requests go to POST {base}/generate/{model}/{prompt}; the response body is
// either a JSON string (single text) or a JSON array of {label, content}.
type Client struct {
	base   string
	client *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a client for the bridge at base (e.g. "http://localhost:5000").
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: base,
		// generation calls are slow; the per-step deadline belongs to ctx
		client: &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate posts the request and decodes the response texts.
func (c *Client) Generate(ctx context.Context, req ports.GenerationRequest) ([]ports.GeneratedText, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGeneration, err)
	}

	endpoint := fmt.Sprintf("%s/generate/%s/%s",
		c.base, url.PathEscape(req.Model), url.PathEscape(req.Prompt))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGeneration, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGeneration, resp.StatusCode)
	}

	return decodeTexts(raw)
}

// decodeTexts accepts the bridge's two response shapes.
func decodeTexts(raw []byte) ([]ports.GeneratedText, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []ports.GeneratedText{{Content: single}}, nil
	}

	var batch []ports.GeneratedText
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("%w: unexpected response body", ErrGeneration)
	}
	return batch, nil
}
