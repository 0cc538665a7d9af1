// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about registry lookups, cache operations, and API calls.
//
// Registry clients swallow every failure and report "absent" to their
// callers. The lookup hooks are where those failures stay visible: each
// swallowed error is reported through [LookupHooks.OnFailure].
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewLogHooks(logger)
//	    observability.SetLookupHooks(hooks)
//	    observability.SetCacheHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Lookup().OnLookup(ctx, "npm", "package", observability.OutcomeFound, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// Outcome classifies how a registry lookup ended.
type Outcome string

// Lookup outcomes.
const (
	OutcomeInvalid       Outcome = "invalid"         // name rejected before cache or network
	OutcomeCacheHit      Outcome = "cache_hit"       // positive entry served from cache
	OutcomeNegativeHit   Outcome = "negative_hit"    // negative entry served from cache
	OutcomeCacheOnlyMiss Outcome = "cache_only_miss" // cold cache in cache-only mode
	OutcomeFound         Outcome = "found"           // fetched from upstream
	OutcomeNotFound      Outcome = "not_found"       // upstream failed, negative entry written
	OutcomeAborted       Outcome = "aborted"         // caller's context ended, nothing cached
)

// =============================================================================
// Lookup Hooks
// =============================================================================

// LookupHooks receives events from registry clients.
type LookupHooks interface {
	// OnLookup records the outcome of one search or readme lookup.
	OnLookup(ctx context.Context, registry, op string, outcome Outcome, duration time.Duration)

	// OnFailure records an error that was converted to an absent result.
	OnFailure(ctx context.Context, registry, op, query string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLookupHooks is a no-op implementation of LookupHooks.
type NoopLookupHooks struct{}

func (NoopLookupHooks) OnLookup(context.Context, string, string, Outcome, time.Duration) {}
func (NoopLookupHooks) OnFailure(context.Context, string, string, string, error)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	lookupHooks LookupHooks = NoopLookupHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLookupHooks registers custom lookup hooks.
// This should be called once at application startup before any lookups.
func SetLookupHooks(h LookupHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		lookupHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Lookup returns the registered lookup hooks.
func Lookup() LookupHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return lookupHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	lookupHooks = NoopLookupHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
