// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package metadata from the npm registry
// (https://registry.npmjs.org), the package manager for JavaScript.
//
// # Usage
//
//	client := npm.NewClient(nil, "")
//
//	pkg, err := client.FetchLatest(ctx, "express")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(pkg.Name, pkg.Version)
//
// # Version Selection
//
// The client requests /<name>/latest, which the registry resolves to the
// version tagged "latest" in dist-tags. Only that version document is
// downloaded, not the full packument.
package npm
