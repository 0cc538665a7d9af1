package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/search"
)

var upstreamRoutes = map[string]string{
	"/npm/is-even/latest":                    `{"name": "is-even", "version": "1.0.0", "description": "Return true if the given number is even.", "maintainers": [{"name": "jonschlinkert"}]}`,
	"/esm/is-even/README.md":                 "# is-even\n\n## Usage\n\n```js\nisEven(2)\n```\n",
	"/crates-io/crates/serde":                `{"crate": {"name": "serde", "max_version": "1.0.210", "description": "A serialization framework"}}`,
	"/crates-io/crates/serde/1.0.210/readme": `<h1>Serde</h1><p>Serde is a <strong>framework</strong>.</p>`,
}

// setupEnv points every registry at a local fake and isolates config and
// cache directories. It returns the upstream request counter.
func setupEnv(t *testing.T, backend string) *atomic.Int32 {
	t.Helper()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, ok := upstreamRoutes[r.URL.EscapedPath()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("LIBRA_CACHE_BACKEND", backend)
	t.Setenv("LIBRA_NPM_URL", srv.URL+"/npm")
	t.Setenv("LIBRA_JSR_URL", srv.URL+"/jsr")
	t.Setenv("LIBRA_CRATES_URL", srv.URL+"/crates-io")
	t.Setenv("LIBRA_ESM_URL", srv.URL+"/esm")
	return &requests
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestSearchJSON(t *testing.T) {
	requests := setupEnv(t, "memory")

	out, err := runCLI(t, "search", "is-even", "--json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}

	var res search.Results
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Count != (search.Counts{NPM: 1, Total: 1}) {
		t.Errorf("count = %+v", res.Count)
	}
	if len(res.Packages) != 1 || res.Packages[0].Author != "jonschlinkert" {
		t.Errorf("results = %+v", res.Packages)
	}
	// npm and crates.io accept "is-even"; JSR needs a scope.
	if n := requests.Load(); n != 2 {
		t.Errorf("upstream requests = %d, want 2", n)
	}
}

func TestSearchSingleRegistryJSON(t *testing.T) {
	setupEnv(t, "memory")

	out, err := runCLI(t, "search", "serde", "--registry", "crates.io", "--json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	var res registryResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Result == nil || res.Result.Version != "1.0.210" {
		t.Errorf("result = %+v", res.Result)
	}

	out, err = runCLI(t, "search", "serde", "-r", "npm", "--json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !strings.Contains(out, `"result": null`) {
		t.Errorf("output = %s, want a null result", out)
	}
}

func TestSearchUnknownRegistry(t *testing.T) {
	setupEnv(t, "memory")

	_, err := runCLI(t, "search", "requests", "--registry", "pypi")
	if !liberrors.Is(err, liberrors.ErrCodeInvalidRegistry) {
		t.Errorf("error = %v, want INVALID_REGISTRY", err)
	}
}

func TestSearchTable(t *testing.T) {
	setupEnv(t, "memory")

	out, err := runCLI(t, "search", "serde")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	for _, want := range []string{"crates.io", "serde", "1.0.210", "https://crates.io/crates/serde", "crates.io 1", "libra readme crates serde"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchNoResults(t *testing.T) {
	setupEnv(t, "memory")

	out, err := runCLI(t, "search", "left-pad")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !strings.Contains(out, "No packages named") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchCacheOnlyUsesFileCache(t *testing.T) {
	requests := setupEnv(t, "file")

	first, err := runCLI(t, "search", "is-even", "--json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	requests.Store(0)

	cached, err := runCLI(t, "search", "is-even", "--json", "--cache-only")
	if err != nil {
		t.Fatalf("cache-only search error: %v", err)
	}
	if cached != first {
		t.Errorf("cache-only output = %s, want %s", cached, first)
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("upstream requests = %d, want 0", n)
	}
}

func TestReadmeCommand(t *testing.T) {
	setupEnv(t, "memory")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"npm markdown", []string{"readme", "npm", "is-even"}, []string{"# is-even", "isEven(2)"}, nil},
		{"crates html to markdown", []string{"readme", "crates", "serde"}, []string{"# Serde", "**framework**"}, []string{"<h1>"}},
		{"npm html", []string{"readme", "npm", "is-even", "--html"}, []string{"<h1>is-even</h1>", "<h2>Usage</h2>"}, nil},
		{"outline", []string{"readme", "npm", "is-even", "--outline"}, []string{"is-even\n  Usage\n"}, []string{"isEven"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("%v error: %v", tt.args, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out)
				}
			}
		})
	}
}

func TestReadmeMissing(t *testing.T) {
	setupEnv(t, "memory")

	_, err := runCLI(t, "readme", "npm", "left-pad")
	if !liberrors.Is(err, liberrors.ErrCodeReadmeNotFound) {
		t.Errorf("error = %v, want README_NOT_FOUND", err)
	}
	_, err = runCLI(t, "readme", "pypi", "requests")
	if !liberrors.Is(err, liberrors.ErrCodeInvalidRegistry) {
		t.Errorf("error = %v, want INVALID_REGISTRY", err)
	}
}

func TestConfigCommands(t *testing.T) {
	setupEnv(t, "memory")

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{"[cache]", `backend = "memory"`, `negative_ttl = "24h0m0s"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "libra.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = runCLI(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t, "etcd")

	_, err := runCLI(t, "search", "serde")
	if !liberrors.Is(err, liberrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompletion(t *testing.T) {
	setupEnv(t, "memory")

	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "libra") {
		t.Error("bash completion should mention libra")
	}
}

func TestCompleteRegistryNames(t *testing.T) {
	setupEnv(t, "memory")

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"readme registry", []string{"__complete", "readme", ""}, true},
		{"readme package", []string{"__complete", "readme", "npm", ""}, false},
		{"cache forget registry", []string{"__complete", "cache", "forget", ""}, true},
		{"search flag", []string{"__complete", "search", "--registry", ""}, true},
		{"search query", []string{"__complete", "search", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("%v error: %v", tt.args, err)
			}
			if got := strings.Contains(out, "crates\n"); got != tt.want {
				t.Errorf("%v offered registries = %v, want %v:\n%s", tt.args, got, tt.want, out)
			}
			if !strings.Contains(out, ":4") {
				t.Errorf("%v should disable file completion:\n%s", tt.args, out)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.HasPrefix(out, "libra version ") {
		t.Errorf("--version = %q", out)
	}
}
