package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface on top of a charmbracelet logger.
// Transport errors are logged at warn level, everything else at debug level.
// Lookup failures stay at debug: a package missing from two of three
// registries is the normal case.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks writing to logger. A nil logger uses log.Default().
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Install registers h for lookup, cache and HTTP events.
func (h *LogHooks) Install() {
	SetLookupHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnLookup(ctx context.Context, registry, op string, outcome Outcome, d time.Duration) {
	h.logger.Debug("lookup", "registry", registry, "op", op, "outcome", outcome, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnFailure(ctx context.Context, registry, op, query string, err error) {
	h.logger.Debug("lookup failed", "registry", registry, "op", op, "query", query, "err", err)
}

func (h *LogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(ctx context.Context, method, host, path string) {
	h.logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("upstream response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(ctx context.Context, method, host, path string, err error) {
	h.logger.Warn("upstream error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ LookupHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
