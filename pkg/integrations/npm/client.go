package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/libra/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// PackageInfo holds the latest published version of an npm package.
type PackageInfo struct {
	Name        string   // Package name, including any @scope/
	Version     string   // Version tagged "latest"
	Description string   // May be empty
	Maintainers []string // Maintainer names in registry order
	Repository  string   // Raw repository URL (may be empty)
}

// Client fetches package documents from the npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm client. An empty baseURL uses [DefaultBaseURL].
func NewClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(hc, nil),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchLatest retrieves the "latest" version document for pkg.
// Returns [integrations.ErrNotFound] if the package does not exist.
func (c *Client) FetchLatest(ctx context.Context, pkg string) (*PackageInfo, error) {
	var data latestResponse
	url := c.baseURL + "/" + integrations.PathEscape(pkg) + "/latest"
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}
	if data.Name == "" {
		return nil, fmt.Errorf("npm package %s: response has no name", pkg)
	}

	info := &PackageInfo{
		Name:        data.Name,
		Version:     data.Version,
		Description: strings.TrimSpace(data.Description),
		Repository:  extractField(data.Repository, "url"),
	}
	for _, m := range data.Maintainers {
		if name := extractField(m, "name"); name != "" {
			info.Maintainers = append(info.Maintainers, name)
		}
	}
	return info, nil
}

// extractField reads field from an object, or returns v itself if it is a
// string. npm allows both shapes for repository and people fields.
func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type latestResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Maintainers []any  `json:"maintainers"`
	Repository  any    `json:"repository"`
}
