// Package server exposes Libra's search over HTTP.
//
// # Routes
//
//	GET /api/search?q=<query>               aggregated search over all registries
//	GET /api/search/{registry}?q=<query>    one registry, result or null
//	GET /api/preview?q=<query>              cache-only aggregated search
//	GET /api/packages/{registry}/<name>     package metadata plus rendered README
//	GET /healthz                            liveness and version
//
// Every response is JSON. Errors are reported as {"error": "..."} with a
// 400, 404 or 500 status; 500 bodies never carry internal details.
//
// # Middleware
//
// Each request gets an X-Request-ID (a UUID unless the client sent one),
// the client address is taken from X-Forwarded-For / X-Real-IP, one access
// line is logged per request, and panics are turned into 500 responses.
package server
