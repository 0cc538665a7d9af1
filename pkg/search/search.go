package search

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/libra/pkg/cache"
	"github.com/matzehuels/libra/pkg/registry"
)

// Counts reports how many registries returned a result.
type Counts struct {
	NPM    int `json:"npm"`
	JSR    int `json:"jsr"`
	Crates int `json:"crates"`
	Total  int `json:"total"`
}

// Results is the outcome of one aggregated search.
type Results struct {
	Query    string             `json:"query"`
	Packages []registry.Package `json:"results"`
	Count    Counts             `json:"count"`
	Elapsed  time.Duration      `json:"-"`
}

// Options controls an aggregated search.
type Options struct {
	CacheOnly bool
}

// Searcher fans a query out to every registry client.
type Searcher struct {
	clients []*registry.Client
	logger  *log.Logger
}

// New creates a Searcher over the given clients. Result order follows the
// order of clients.
func New(logger *log.Logger, clients ...*registry.Client) *Searcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{clients: clients, logger: logger}
}

// NewDefault creates a Searcher with one client per supported registry,
// all sharing up, store and opts.
func NewDefault(up *registry.Upstream, store cache.Cache, logger *log.Logger, opts ...registry.Option) *Searcher {
	if logger != nil {
		opts = append([]registry.Option{registry.WithLogger(logger)}, opts...)
	}
	var clients []*registry.Client
	for _, reg := range registry.All() {
		clients = append(clients, registry.NewClient(reg, up, store, opts...))
	}
	return New(logger, clients...)
}

// Client returns the client for the named registry.
func (s *Searcher) Client(name string) (*registry.Client, bool) {
	reg, ok := registry.Lookup(name)
	if !ok {
		return nil, false
	}
	for _, c := range s.clients {
		if c.Registry() == reg {
			return c, true
		}
	}
	return nil, false
}

// SearchAll queries every registry, fetching from upstream on cache misses.
func (s *Searcher) SearchAll(ctx context.Context, query string) []registry.Package {
	return s.Search(ctx, query, Options{}).Packages
}

// SearchCacheOnly queries every registry from the cache alone. It never
// makes network requests.
func (s *Searcher) SearchCacheOnly(ctx context.Context, query string) []registry.Package {
	return s.Search(ctx, query, Options{CacheOnly: true}).Packages
}

// Search queries every registry concurrently and waits for all of them.
// Absent results are dropped; one registry failing never affects the others.
// A blank query returns empty results without invoking any client.
func (s *Searcher) Search(ctx context.Context, query string, opts Options) Results {
	res := Results{Query: query, Packages: []registry.Package{}}
	if strings.TrimSpace(query) == "" {
		return res
	}
	start := time.Now()

	found := make([]*registry.Package, len(s.clients))
	var g errgroup.Group
	for i, c := range s.clients {
		g.Go(func() error {
			found[i] = c.Search(ctx, query, registry.SearchOptions{CacheOnly: opts.CacheOnly})
			return nil
		})
	}
	_ = g.Wait()

	for _, p := range found {
		if p == nil {
			continue
		}
		res.Packages = append(res.Packages, *p)
		switch p.Source {
		case registry.SourceNPM:
			res.Count.NPM++
		case registry.SourceJSR:
			res.Count.JSR++
		case registry.SourceCrates:
			res.Count.Crates++
		}
	}
	res.Count.Total = len(res.Packages)
	res.Elapsed = time.Since(start)

	s.logger.Debug("search", "query", query, "cache_only", opts.CacheOnly,
		"results", res.Count.Total, "elapsed", res.Elapsed.Round(time.Millisecond))
	return res
}
