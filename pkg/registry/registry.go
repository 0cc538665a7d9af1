package registry

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/matzehuels/libra/pkg/integrations"
	"github.com/matzehuels/libra/pkg/integrations/crates"
	"github.com/matzehuels/libra/pkg/integrations/esm"
	"github.com/matzehuels/libra/pkg/integrations/jsr"
	"github.com/matzehuels/libra/pkg/integrations/npm"
)

// Source identifies an upstream registry.
type Source string

// Supported registries, in result order.
const (
	SourceNPM    Source = "npm"
	SourceJSR    Source = "jsr"
	SourceCrates Source = "crates"
)

// ReadmeFormat is the markup a registry's README is delivered in.
type ReadmeFormat string

const (
	FormatMarkdown ReadmeFormat = "markdown"
	FormatHTML     ReadmeFormat = "html"
)

// Package is one registry's answer to a query.
type Package struct {
	Source      Source `json:"source"`
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Author      string `json:"author,omitempty"`
	GitHub      string `json:"github,omitempty"`
}

// Registry describes how to validate, fetch and normalize packages from one
// upstream. Every registry runs through the same [Client] algorithm.
type Registry struct {
	Name         Source
	Label        string // Display name ("npm", "JSR", "crates.io")
	ReadmeFormat ReadmeFormat

	// Validate returns the canonical (trimmed) query or an INVALID_PACKAGE error.
	Validate func(query string) (string, error)
	// Fetch returns the normalized package for a validated name.
	Fetch func(ctx context.Context, up *Upstream, name string) (*Package, error)
	// FetchReadme returns the README text for a validated name.
	FetchReadme func(ctx context.Context, up *Upstream, name string) (string, error)
}

// String returns the registry name.
func (r *Registry) String() string { return string(r.Name) }

// All returns every supported registry in result order.
func All() []*Registry {
	return []*Registry{NPM, JSR, Crates}
}

// Names returns the names of all registries.
func Names() []string {
	var names []string
	for _, r := range All() {
		names = append(names, string(r.Name))
	}
	return names
}

// Lookup finds a registry by name. Matching is case-insensitive and
// accepts "crates.io" for crates.
func Lookup(name string) (*Registry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "crates.io" {
		name = string(SourceCrates)
	}
	regs := All()
	i := slices.IndexFunc(regs, func(r *Registry) bool { return string(r.Name) == name })
	if i < 0 {
		return nil, false
	}
	return regs[i], true
}

// BaseURLs overrides upstream endpoints. Empty fields use the production URL.
type BaseURLs struct {
	NPM    string
	JSR    string
	Crates string
	ESM    string
}

// Upstream bundles the API clients registry strategies talk to.
type Upstream struct {
	NPM    *npm.Client
	JSR    *jsr.Client
	Crates *crates.Client
	ESM    *esm.Client
}

// NewUpstream creates API clients sharing hc. A nil hc uses
// [integrations.NewHTTPClient].
func NewUpstream(hc *http.Client, urls BaseURLs) *Upstream {
	if hc == nil {
		hc = integrations.NewHTTPClient()
	}
	return &Upstream{
		NPM:    npm.NewClient(hc, urls.NPM),
		JSR:    jsr.NewClient(hc, urls.JSR),
		Crates: crates.NewClient(hc, urls.Crates),
		ESM:    esm.NewClient(hc, urls.ESM),
	}
}
