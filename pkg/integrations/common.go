package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/libra/pkg/httputil"
)

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the default timeout and User-Agent.
func NewHTTPClient() *http.Client {
	return httputil.NewClient(httputil.Options{})
}

// BaseURL returns override when set, otherwise def, without a trailing slash.
func BaseURL(override, def string) string {
	if override == "" {
		return def
	}
	return strings.TrimSuffix(override, "/")
}

// PathEscape percent-encodes a package name for use as one URL path segment.
// Scoped names keep their "@" and have the "/" encoded.
func PathEscape(s string) string { return url.PathEscape(s) }
