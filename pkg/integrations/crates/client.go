package crates

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/libra/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// CrateInfo holds metadata for a Rust crate from crates.io.
//
// The Version field contains the max_version (latest stable or highest version).
type CrateInfo struct {
	Name        string // Crate name (e.g., "serde", never empty in valid info)
	Version     string // Latest version (e.g., "1.0.193")
	Description string // Crate description, trimmed (may be empty)
	Repository  string // Repository URL (may be empty)
}

// Client provides access to the crates.io package registry API.
//
// All methods are safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; the transport from
// [integrations.NewHTTPClient] sets one.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client. An empty baseURL uses [DefaultBaseURL].
func NewClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(hc, nil),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchCrate retrieves metadata for a Rust crate from crates.io.
//
// Returns:
//   - CrateInfo populated with metadata on success
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - Other errors for JSON decoding failures
func (c *Client) FetchCrate(ctx context.Context, crate string) (*CrateInfo, error) {
	var data crateResponse
	if err := c.Get(ctx, c.baseURL+"/crates/"+integrations.PathEscape(crate), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: crate %s", err, crate)
		}
		return nil, err
	}
	if data.Crate.Name == "" {
		return nil, fmt.Errorf("crate %s: response has no name", crate)
	}

	return &CrateInfo{
		Name:        data.Crate.Name,
		Version:     data.Crate.MaxVersion,
		Description: strings.TrimSpace(data.Crate.Description),
		Repository:  data.Crate.Repository,
	}, nil
}

// FetchReadme returns the rendered README of a crate version. crates.io
// serves it as an HTML fragment.
func (c *Client) FetchReadme(ctx context.Context, crate, version string) (string, error) {
	if version == "" {
		return "", fmt.Errorf("crate %s: version is required", crate)
	}
	url := fmt.Sprintf("%s/crates/%s/%s/readme", c.baseURL,
		integrations.PathEscape(crate), integrations.PathEscape(version))
	text, err := c.GetText(ctx, url)
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: readme for crate %s %s", err, crate, version)
		}
		return "", err
	}
	return text, nil
}

// FetchLatestReadme resolves the crate's max_version and returns its README.
func (c *Client) FetchLatestReadme(ctx context.Context, crate string) (string, error) {
	info, err := c.FetchCrate(ctx, crate)
	if err != nil {
		return "", err
	}
	return c.FetchReadme(ctx, info.Name, info.Version)
}

type crateResponse struct {
	Crate struct {
		Name        string `json:"name"`
		MaxVersion  string `json:"max_version"`
		Description string `json:"description"`
		Repository  string `json:"repository"`
	} `json:"crate"`
}
