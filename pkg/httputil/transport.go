package httputil

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/matzehuels/libra/pkg/observability"
)

// UserAgent identifies Libra to upstream registries.
const UserAgent = "Libra/1.0 (+https://libra.ryu.app)"

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 10 * time.Second

// Options configures [NewClient] and [NewTransport].
type Options struct {
	Timeout   time.Duration     // 0 means DefaultTimeout
	UserAgent string            // "" means UserAgent
	RateLimit float64           // requests per second per host; 0 disables throttling
	Burst     int               // token bucket size; 0 means 1
	Base      http.RoundTripper // nil means http.DefaultTransport
}

// Transport decorates a base RoundTripper with the User-Agent header,
// per-host throttling and HTTP hooks.
type Transport struct {
	base      http.RoundTripper
	userAgent string
	limit     rate.Limit
	burst     int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewTransport creates a Transport from opts.
func NewTransport(opts Options) *Transport {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = UserAgent
	}
	t := &Transport{
		base:      base,
		userAgent: ua,
		limit:     rate.Inf,
		burst:     max(opts.Burst, 1),
		limiters:  make(map[string]*rate.Limiter),
	}
	if opts.RateLimit > 0 {
		t.limit = rate.Limit(opts.RateLimit)
	}
	return t
}

// NewClient creates an http.Client backed by a Transport.
func NewClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: NewTransport(opts)}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()

	if err := t.limiter(host).Wait(ctx); err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(ctx)
		req.Header.Set("User-Agent", t.userAgent)
	}

	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func (t *Transport) limiter(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.limiters[host]
	if !ok {
		l = rate.NewLimiter(t.limit, t.burst)
		t.limiters[host] = l
	}
	return l
}
