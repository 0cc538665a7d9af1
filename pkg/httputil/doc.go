// Package httputil provides HTTP plumbing shared by all registry clients.
//
// # Overview
//
// [Transport] is an [http.RoundTripper] that every upstream request goes
// through. It:
//
//   - sets the Libra User-Agent on requests that do not carry one
//   - throttles requests per host with a token bucket (optional)
//   - reports each request to the [observability.HTTPHooks]
//
// [NewClient] wraps a Transport in an [http.Client] with a request timeout:
//
//	client := httputil.NewClient(httputil.Options{
//	    Timeout:   10 * time.Second,
//	    RateLimit: 5, // requests per second per host
//	})
//
// There is no retry layer. A failed request is reported once and the
// registry client records the lookup as absent.
package httputil
