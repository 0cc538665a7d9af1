// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package fetches crate metadata and README documents from crates.io
// (https://crates.io), the Rust community's package registry.
//
// # Usage
//
//	client := crates.NewClient(nil, "")
//
//	crate, err := client.FetchCrate(ctx, "serde")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(crate.Name, crate.Version)
//
//	html, err := client.FetchLatestReadme(ctx, "serde")
//
// # README
//
// crates.io stores READMEs per version and serves them pre-rendered as
// HTML. [Client.FetchLatestReadme] first resolves max_version, then
// downloads /crates/<name>/<version>/readme.
//
// # User-Agent
//
// crates.io rejects requests without a User-Agent. Use an http.Client from
// [integrations.NewHTTPClient], which sets one.
package crates
