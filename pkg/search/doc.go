// Package search aggregates package lookups across registries.
//
// A [Searcher] sends the same query to every registry client at once and
// collects whatever comes back, in registry order (npm, JSR, crates.io).
// Registries without a match are left out. There is no ranking and no
// deduplication: each registry contributes at most one package.
//
//	s := search.NewDefault(registry.NewUpstream(nil, registry.BaseURLs{}), store, logger)
//	pkgs := s.SearchAll(ctx, "serde")
//
// [Searcher.SearchCacheOnly] answers from the cache alone and is safe to
// call on hot paths such as server-rendered previews.
package search
