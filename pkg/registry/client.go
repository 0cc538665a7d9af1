package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libra/pkg/cache"
	"github.com/matzehuels/libra/pkg/integrations"
	"github.com/matzehuels/libra/pkg/observability"
)

// SearchOptions controls a single [Client.Search] call.
type SearchOptions struct {
	// CacheOnly answers from the cache alone. A miss returns nil without
	// touching the network.
	CacheOnly bool
}

// Client looks up packages in one registry through a shared cache.
//
// Search and Readme never return errors. Every failure (invalid name,
// upstream error, bad response) is reported as an absent result and logged.
// Upstream failures are cached with the negative TTL so the same miss is not
// retried until it expires. Lookups abandoned by the caller are not cached.
type Client struct {
	reg    *Registry
	up     *Upstream
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    cache.TTLPolicy
	logger *log.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithKeyer sets the cache key builder. Defaults to [cache.NewDefaultKeyer].
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithTTLPolicy sets positive and negative TTLs. Zero fields keep defaults.
func WithTTLPolicy(p cache.TTLPolicy) Option {
	return func(c *Client) { c.ttl = p.WithDefaults() }
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for reg. A nil store disables caching.
func NewClient(reg *Registry, up *Upstream, store cache.Cache, opts ...Option) *Client {
	if store == nil {
		store = cache.NewNullCache()
	}
	c := &Client{
		reg:    reg,
		up:     up,
		cache:  store,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cache.DefaultTTLPolicy(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry this client queries.
func (c *Client) Registry() *Registry { return c.reg }

// entry is the cached form of a metadata lookup. A nil Result records a
// known miss.
type entry struct {
	Result *Package `json:"result"`
}

// Search returns the package matching query, or nil if it is absent,
// invalid or (in cache-only mode) not cached.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) *Package {
	start := time.Now()
	name, err := c.reg.Validate(query)
	if err != nil {
		c.done(ctx, cache.OpPackage, observability.OutcomeInvalid, start)
		return nil
	}
	key := c.keyer.PackageKey(string(c.reg.Name), name)

	if data, ok := c.get(ctx, cache.OpPackage, name, key); ok {
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			c.fail(ctx, cache.OpPackage, name, err, "corrupt cache entry")
		} else {
			if e.Result == nil {
				c.done(ctx, cache.OpPackage, observability.OutcomeNegativeHit, start)
			} else {
				c.done(ctx, cache.OpPackage, observability.OutcomeCacheHit, start)
			}
			return e.Result
		}
	}

	if opts.CacheOnly {
		c.done(ctx, cache.OpPackage, observability.OutcomeCacheOnlyMiss, start)
		return nil
	}

	pkg, err := c.reg.Fetch(ctx, c.up, name)
	if err != nil {
		c.fail(ctx, cache.OpPackage, name, err, "fetch failed")
		if c.aborted(ctx, cache.OpPackage, start) {
			return nil
		}
		c.put(ctx, cache.OpPackage, name, key, mustMarshal(entry{}), cache.Negative)
		c.done(ctx, cache.OpPackage, observability.OutcomeNotFound, start)
		return nil
	}

	c.put(ctx, cache.OpPackage, name, key, mustMarshal(entry{Result: pkg}), cache.Positive)
	c.done(ctx, cache.OpPackage, observability.OutcomeFound, start)
	return pkg
}

// Readme returns the README text for query. The second result is false if
// the name is invalid, the README could not be fetched, or a previous
// failure is still cached. A cached empty text counts as such a failure.
func (c *Client) Readme(ctx context.Context, query string) (string, bool) {
	start := time.Now()
	name, err := c.reg.Validate(query)
	if err != nil {
		c.done(ctx, cache.OpReadme, observability.OutcomeInvalid, start)
		return "", false
	}
	key := c.keyer.ReadmeKey(string(c.reg.Name), name)

	if data, ok := c.get(ctx, cache.OpReadme, name, key); ok {
		if len(data) == 0 {
			c.done(ctx, cache.OpReadme, observability.OutcomeNegativeHit, start)
			return "", false
		}
		c.done(ctx, cache.OpReadme, observability.OutcomeCacheHit, start)
		return string(data), true
	}

	text, err := c.reg.FetchReadme(ctx, c.up, name)
	if err == nil && text == "" {
		err = integrations.ErrNotFound
	}
	if err != nil {
		c.fail(ctx, cache.OpReadme, name, err, "readme fetch failed")
		if c.aborted(ctx, cache.OpReadme, start) {
			return "", false
		}
		c.put(ctx, cache.OpReadme, name, key, []byte{}, cache.Negative)
		c.done(ctx, cache.OpReadme, observability.OutcomeNotFound, start)
		return "", false
	}

	c.put(ctx, cache.OpReadme, name, key, []byte(text), cache.Positive)
	c.done(ctx, cache.OpReadme, observability.OutcomeFound, start)
	return text, true
}

// Forget drops the cached metadata and README for query, so the next lookup
// goes upstream. Invalid names have nothing cached.
func (c *Client) Forget(ctx context.Context, query string) error {
	name, err := c.reg.Validate(query)
	if err != nil {
		return err
	}
	for _, key := range []string{
		c.keyer.PackageKey(string(c.reg.Name), name),
		c.keyer.ReadmeKey(string(c.reg.Name), name),
	} {
		if err := c.cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// get reads key, treating backend errors as a miss.
func (c *Client) get(ctx context.Context, op, name, key string) ([]byte, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.fail(ctx, op, name, err, "cache read failed")
		ok = false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, op)
	} else {
		observability.Cache().OnCacheMiss(ctx, op)
	}
	return data, ok
}

// put writes key with the TTL for class. Write errors are logged only.
func (c *Client) put(ctx context.Context, op, name, key string, data []byte, class cache.TTLClass) {
	if err := c.cache.Set(ctx, key, data, c.ttl.TTL(class)); err != nil {
		c.fail(ctx, op, name, err, "cache write failed")
		return
	}
	observability.Cache().OnCacheSet(ctx, op, len(data))
}

func (c *Client) fail(ctx context.Context, op, name string, err error, msg string) {
	kv := []any{"registry", c.reg.Name, "op", op, "name", name, "err", err}
	if errors.Is(err, integrations.ErrNotFound) {
		c.logger.Debug(msg, kv...)
	} else {
		c.logger.Warn(msg, kv...)
	}
	observability.Lookup().OnFailure(ctx, string(c.reg.Name), op, name, err)
}

// aborted reports whether the caller gave up on the lookup. A cancelled or
// expired ctx says nothing about the upstream, so no negative entry is
// written for it.
func (c *Client) aborted(ctx context.Context, op string, start time.Time) bool {
	if ctx.Err() == nil {
		return false
	}
	c.done(ctx, op, observability.OutcomeAborted, start)
	return true
}

func (c *Client) done(ctx context.Context, op string, outcome observability.Outcome, start time.Time) {
	observability.Lookup().OnLookup(ctx, string(c.reg.Name), op, outcome, time.Since(start))
}

func mustMarshal(e entry) []byte {
	data, err := json.Marshal(e)
	if err != nil {
		// Package holds only strings.
		panic(err)
	}
	return data
}
