package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libra/pkg/cache"
	"github.com/matzehuels/libra/pkg/registry"
)

// newTestSearcher serves a fixed set of upstream documents and counts every
// request, per registry prefix.
func newTestSearcher(t *testing.T, routes map[string]string) (*Searcher, *cache.MemoryCache, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	up := registry.NewUpstream(server.Client(), registry.BaseURLs{
		NPM:    server.URL + "/npm",
		JSR:    server.URL + "/jsr",
		Crates: server.URL + "/crates-io",
		ESM:    server.URL + "/esm",
	})
	store := cache.NewMemoryCache()
	return NewDefault(up, store, log.New(io.Discard)), store, &requests
}

var routes = map[string]string{
	"/npm/serde/latest":             `{"name": "serde", "version": "0.0.1", "description": "npm squatter"}`,
	"/crates-io/crates/serde":       `{"crate": {"name": "serde", "max_version": "1.0.210", "description": "Serialization"}}`,
	"/jsr/scopes/std/packages/path": `{"scope": "std", "name": "path", "latestVersion": "1.0.8"}`,
}

func TestSearchAllOrderAndCounts(t *testing.T) {
	s, _, requests := newTestSearcher(t, routes)

	res := s.Search(context.Background(), "serde", Options{})

	if len(res.Packages) != 2 {
		t.Fatalf("results = %+v, want npm and crates", res.Packages)
	}
	if res.Packages[0].Source != registry.SourceNPM || res.Packages[1].Source != registry.SourceCrates {
		t.Errorf("result order = %s, %s; want npm, crates", res.Packages[0].Source, res.Packages[1].Source)
	}
	want := Counts{NPM: 1, JSR: 0, Crates: 1, Total: 2}
	if res.Count != want {
		t.Errorf("Count = %+v, want %+v", res.Count, want)
	}
	// "serde" is not a valid JSR name, so only npm and crates.io are asked.
	if n := requests.Load(); n != 2 {
		t.Errorf("upstream requests = %d, want 2", n)
	}
}

func TestSearchAllOneRequestPerRegistry(t *testing.T) {
	s, _, requests := newTestSearcher(t, routes)

	// Valid for npm and JSR, found in neither; crates.io rejects the slash.
	got := s.SearchAll(context.Background(), "@ab/cd")
	if len(got) != 0 {
		t.Errorf("SearchAll() = %+v, want empty", got)
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("upstream requests = %d, want 2", n)
	}

	requests.Store(0)
	s.SearchAll(context.Background(), "tokio")
	if n := requests.Load(); n != 2 {
		t.Errorf("upstream requests for tokio = %d, want 2 (npm, crates)", n)
	}
}

func TestSearchPartialFailure(t *testing.T) {
	s, _, _ := newTestSearcher(t, routes)

	got := s.SearchAll(context.Background(), "@std/path")
	if len(got) != 1 || got[0].Name != "@std/path" {
		t.Errorf("SearchAll() = %+v, want only the JSR result", got)
	}
}

func TestSearchCacheOnlyColdCache(t *testing.T) {
	s, store, requests := newTestSearcher(t, routes)

	got := s.SearchCacheOnly(context.Background(), "serde")
	if got == nil || len(got) != 0 {
		t.Errorf("SearchCacheOnly() = %#v, want empty non-nil slice", got)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("upstream requests = %d, want 0", n)
	}
	if n := store.Len(); n != 0 {
		t.Errorf("cache entries = %d, want 0", n)
	}
}

func TestSearchCacheOnlyWarmCache(t *testing.T) {
	s, _, requests := newTestSearcher(t, routes)
	ctx := context.Background()

	full := s.SearchAll(ctx, "serde")
	requests.Store(0)

	cached := s.SearchCacheOnly(ctx, "serde")
	if len(cached) != len(full) {
		t.Fatalf("SearchCacheOnly() = %+v, want %+v", cached, full)
	}
	for i := range full {
		if cached[i] != full[i] {
			t.Errorf("cached[%d] = %+v, want %+v", i, cached[i], full[i])
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("upstream requests = %d, want 0", n)
	}
}

func TestSearchBlankQuery(t *testing.T) {
	s, store, requests := newTestSearcher(t, routes)

	for _, q := range []string{"", "   ", "\t\n"} {
		res := s.Search(context.Background(), q, Options{})
		if len(res.Packages) != 0 || res.Count.Total != 0 {
			t.Errorf("Search(%q) = %+v, want empty", q, res)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("upstream requests = %d, want 0", n)
	}
	if n := store.Len(); n != 0 {
		t.Errorf("cache entries = %d, want 0", n)
	}
}

func TestSearcherClient(t *testing.T) {
	s, _, _ := newTestSearcher(t, routes)

	tests := []struct {
		name   string
		want   *registry.Registry
		wantOK bool
	}{
		{"npm", registry.NPM, true},
		{"jsr", registry.JSR, true},
		{"crates", registry.Crates, true},
		{"pypi", nil, false},
	}
	for _, tt := range tests {
		c, ok := s.Client(tt.name)
		if ok != tt.wantOK {
			t.Errorf("Client(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && c.Registry() != tt.want {
			t.Errorf("Client(%q) registry = %v, want %v", tt.name, c.Registry(), tt.want)
		}
	}
}

func TestSearcherClientSubset(t *testing.T) {
	up := registry.NewUpstream(nil, registry.BaseURLs{})
	s := New(nil, registry.NewClient(registry.NPM, up, nil))

	if _, ok := s.Client("npm"); !ok {
		t.Error("Client(npm) should be found")
	}
	if _, ok := s.Client("crates"); ok {
		t.Error("Client(crates) should not be found when not configured")
	}
}
