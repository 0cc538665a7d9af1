// Package jsr provides an HTTP client for the JSR (jsr.io) registry API.
//
// # Usage
//
//	client := jsr.NewClient(nil, "")
//
//	pkg, err := client.FetchPackage(ctx, "std", "path")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pkg.FullName(), pkg.LatestVersion)
//
// Package ids on JSR are always scoped. The API addresses them as
// /scopes/<scope>/packages/<name> with the "@" dropped from the scope.
package jsr
