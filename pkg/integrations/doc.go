// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// and README documents. Each upstream has its own subpackage:
//
//   - [npm]: Node Package Manager registry
//   - [jsr]: JavaScript Registry
//   - [crates]: Rust crates.io
//   - [esm]: esm.sh package-content mirror, used for npm and JSR READMEs
//   - [github]: repository reference parsing and validation
//
// # Client Pattern
//
// All registry clients follow a consistent pattern:
//
//	client := npm.NewClient(httpClient, "")      // "" = production base URL
//	pkg, err := client.FetchLatest(ctx, "express")
//
// Clients only talk HTTP and decode responses. Validation, caching and
// normalization into search results belong to the registry package.
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients. Non-2xx responses map to [ErrNotFound] (404) or [ErrNetwork].
//
// # Adding a New Registry
//
// To add support for a new package registry:
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client embedding [Client] with a base URL override
//  4. Wire it into the registry package as a new strategy
//
// [npm]: github.com/matzehuels/libra/pkg/integrations/npm
// [jsr]: github.com/matzehuels/libra/pkg/integrations/jsr
// [crates]: github.com/matzehuels/libra/pkg/integrations/crates
// [esm]: github.com/matzehuels/libra/pkg/integrations/esm
// [github]: github.com/matzehuels/libra/pkg/integrations/github
package integrations
