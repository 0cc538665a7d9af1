package esm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matzehuels/libra/pkg/integrations"
)

// DefaultBaseURL is the public esm.sh CDN.
const DefaultBaseURL = "https://esm.sh"

const readmeFile = "README.md"

// Client downloads files from published packages through esm.sh.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an esm.sh client. An empty baseURL uses [DefaultBaseURL].
func NewClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(hc, nil),
		baseURL: integrations.BaseURL(baseURL, DefaultBaseURL),
	}
}

// NpmReadme returns the README.md shipped in the latest npm tarball of pkg.
func (c *Client) NpmReadme(ctx context.Context, pkg string) (string, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s/%s", c.baseURL, integrations.PathEscape(pkg), readmeFile))
}

// JSRReadme returns the README.md of the latest version of @scope/name.
func (c *Client) JSRReadme(ctx context.Context, scope, name string) (string, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/jsr/@%s/%s/%s", c.baseURL,
		integrations.PathEscape(scope), integrations.PathEscape(name), readmeFile))
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	text, err := c.GetText(ctx, url)
	if err != nil {
		return "", fmt.Errorf("esm.sh %s: %w", url, err)
	}
	return text, nil
}
