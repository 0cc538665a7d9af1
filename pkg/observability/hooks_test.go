package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Lookup hooks
	l := NoopLookupHooks{}
	l.OnLookup(ctx, "npm", "package", OutcomeFound, time.Second)
	l.OnFailure(ctx, "npm", "package", "is-even", errors.New("boom"))

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "package")
	c.OnCacheMiss(ctx, "readme")
	c.OnCacheSet(ctx, "package", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.npmjs.org", "/is-even/latest")
	h.OnResponse(ctx, "GET", "registry.npmjs.org", "/is-even/latest", 200, time.Second)
	h.OnError(ctx, "GET", "registry.npmjs.org", "/is-even/latest", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Lookup() should return NoopLookupHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customLookup := &testLookupHooks{}
	SetLookupHooks(customLookup)
	if Lookup() != customLookup {
		t.Error("SetLookupHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Lookup().(NoopLookupHooks); !ok {
		t.Error("Reset() should restore NoopLookupHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLookupHooks{}
	SetLookupHooks(custom)

	// Setting nil should be ignored
	SetLookupHooks(nil)

	if Lookup() != custom {
		t.Error("SetLookupHooks(nil) should be ignored")
	}

	Reset()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnFailure(ctx, "crates", "readme", "serde", errors.New("status 500"))
	h.OnLookup(ctx, "npm", "package", OutcomeNegativeHit, 3*time.Millisecond)

	out := buf.String()
	for _, want := range []string{"lookup failed", "crates", "serde", "status 500", "negative_hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksInstall(t *testing.T) {
	Reset()
	defer Reset()

	h := NewLogHooks(nil)
	h.Install()

	if Lookup() != h || Cache() != h || HTTP() != h {
		t.Error("Install() should register hooks for every event type")
	}
}

// Test implementations
type testLookupHooks struct{ NoopLookupHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
