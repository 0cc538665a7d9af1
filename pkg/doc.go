// Package pkg provides the libraries behind Libra, a package lookup service
// for npm, JSR and crates.io.
//
// # Overview
//
// Libra answers one question: "which registries have a package with this
// exact name, and what do they say about it?" The pkg directory is
// organized into these areas:
//
//  1. [registry] - One client per registry: validate, cache, fetch, normalize
//  2. [search] - Concurrent fan-out of a query over every registry
//  3. [integrations] - Low-level HTTP clients for npm, JSR, crates.io and esm.sh
//  4. [cache] - Key/value snapshot stores (memory, file, Redis, MongoDB)
//  5. [readme] - README rendering, sanitization and conversion
//  6. [server] - The HTTP API
//  7. [config], [httputil], [observability], [errors], [buildinfo] - Ambient infrastructure
//
// # Architecture
//
// The data flow for one search:
//
//	query
//	  ↓
//	[search] fan-out (one goroutine per registry)
//	  ↓
//	[registry] validate → [cache] lookup → [integrations] fetch → normalize
//	  ↓
//	[cache] write (positive 1h, negative 24h)
//	  ↓
//	results in registry order: npm, JSR, crates.io
//
// Failures never propagate out of a registry client. Invalid names, upstream
// errors and not-found responses all become an absent result; they are
// reported through [observability] hooks and the logger instead.
//
// # Quick Start
//
//	up := registry.NewUpstream(httputil.NewClient(httputil.Options{}), registry.BaseURLs{})
//	s := search.NewDefault(up, cache.NewMemoryCache(), nil)
//
//	res := s.Search(ctx, "serde", search.Options{})
//	for _, p := range res.Packages {
//	    fmt.Println(p.Source, p.Name, p.Version)
//	}
//
// [registry]: github.com/matzehuels/libra/pkg/registry
// [search]: github.com/matzehuels/libra/pkg/search
// [integrations]: github.com/matzehuels/libra/pkg/integrations
// [cache]: github.com/matzehuels/libra/pkg/cache
// [readme]: github.com/matzehuels/libra/pkg/readme
// [server]: github.com/matzehuels/libra/pkg/server
// [config]: github.com/matzehuels/libra/pkg/config
// [httputil]: github.com/matzehuels/libra/pkg/httputil
// [observability]: github.com/matzehuels/libra/pkg/observability
// [errors]: github.com/matzehuels/libra/pkg/errors
// [buildinfo]: github.com/matzehuels/libra/pkg/buildinfo
package pkg
