// Package registry implements the per-registry lookup engine.
//
// # Overview
//
// A [Registry] is a strategy value describing one upstream: how to validate
// a query, fetch and normalize its package metadata, and fetch its README.
// [NPM], [JSR] and [Crates] are the supported registries.
//
// A [Client] runs the same algorithm for every registry:
//
//  1. Validate the query. Invalid names are absent; no cache, no network.
//  2. Look up the cache. A hit is returned as-is, including cached misses.
//  3. In cache-only mode, stop here and report absent.
//  4. Fetch from upstream. On any failure, cache a miss with the negative
//     TTL (24h by default) and report absent.
//  5. Cache the normalized package with the positive TTL (1h by default).
//
// READMEs follow the same shape under a separate key namespace. A cached
// empty README is a known miss.
//
// # Usage
//
//	up := registry.NewUpstream(nil, registry.BaseURLs{})
//	client := registry.NewClient(registry.NPM, up, cache.NewMemoryCache())
//
//	if pkg := client.Search(ctx, "is-even", registry.SearchOptions{}); pkg != nil {
//	    fmt.Println(pkg.Name, pkg.Version)
//	}
//
// # Errors
//
// Search and Readme do not return errors. Failures are logged through the
// client's logger and reported to [observability.LookupHooks].
package registry
