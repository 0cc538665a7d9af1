package jsr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/libra/pkg/integrations"
)

// DefaultBaseURL is the JSR API root.
const DefaultBaseURL = "https://jsr.io/api"

// PackageInfo holds metadata for a JSR package.
type PackageInfo struct {
	Scope         string      // Scope without the leading "@"
	Name          string      // Package name within the scope
	Description   string      // Trimmed description (may be empty)
	LatestVersion string      // May be empty for packages without releases
	GitHub        *Repository // Linked GitHub repository, nil if none
}

// Repository is a GitHub repository linked to a JSR package.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the package id in "@scope/name" form.
func (p *PackageInfo) FullName() string {
	return "@" + p.Scope + "/" + p.Name
}

// Client fetches package metadata from the JSR API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a JSR client. An empty baseURL uses [DefaultBaseURL].
func NewClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(hc, map[string]string{"Accept": "application/json"}),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// FetchPackage retrieves the package scope/name. The scope must not carry
// a leading "@".
func (c *Client) FetchPackage(ctx context.Context, scope, name string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/scopes/%s/packages/%s", c.baseURL,
		integrations.PathEscape(scope), integrations.PathEscape(name))

	var data packageResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: jsr package @%s/%s", err, scope, name)
		}
		return nil, err
	}
	if data.Scope == "" || data.Name == "" {
		return nil, fmt.Errorf("jsr package @%s/%s: response has no scope or name", scope, name)
	}

	return &PackageInfo{
		Scope:         data.Scope,
		Name:          data.Name,
		Description:   strings.TrimSpace(data.Description),
		LatestVersion: data.LatestVersion,
		GitHub:        data.GitHubRepository,
	}, nil
}

type packageResponse struct {
	Scope            string      `json:"scope"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	LatestVersion    string      `json:"latestVersion"`
	GitHubRepository *Repository `json:"githubRepository"`
}
