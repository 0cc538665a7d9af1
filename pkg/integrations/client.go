package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxBodySize caps how much of an upstream response is read. READMEs and
// metadata documents are far smaller; anything larger is treated as a
// broken response.
const MaxBodySize = 4 << 20

// Client provides shared HTTP functionality for all registry API clients.
// It applies default headers and classifies upstream status codes.
// Caching is not done here; the registry layer owns the cache policy.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client using hc for transport and the given default headers.
// A nil hc uses [NewHTTPClient]. Pass nil for headers if no defaults are needed.
func NewClient(hc *http.Client, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient()
	}
	return &Client{
		http:    hc,
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(io.LimitReader(body, MaxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetText performs an HTTP GET request and returns the response body as a string.
// Used for README documents, which are served as Markdown or HTML.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if len(data) > MaxBodySize {
		return "", fmt.Errorf("%w: %s: body exceeds %d bytes", ErrNetwork, url, MaxBodySize)
	}
	return string(data), nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
