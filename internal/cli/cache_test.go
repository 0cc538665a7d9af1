package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	setupEnv(t, "file")

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "libra")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCachePathNonFileBackend(t *testing.T) {
	setupEnv(t, "memory")

	if _, err := runCLI(t, "cache", "path"); err == nil {
		t.Error("cache path should fail for the memory backend")
	}
}

func TestCacheClear(t *testing.T) {
	setupEnv(t, "file")

	if _, err := runCLI(t, "search", "is-even", "--json"); err != nil {
		t.Fatalf("search error: %v", err)
	}

	out, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	// is-even was found on npm and missed on crates.io; both are cached.
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	out, err = runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("second cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cleared 0 cached entries") {
		t.Errorf("second cache clear output = %q", out)
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	setupEnv(t, "file")

	out, err := runCLI(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestCacheForget(t *testing.T) {
	requests := setupEnv(t, "file")

	if _, err := runCLI(t, "search", "is-even", "--registry", "npm", "--json"); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if _, err := runCLI(t, "cache", "forget", "npm", "is-even"); err != nil {
		t.Fatalf("cache forget error: %v", err)
	}

	requests.Store(0)
	if _, err := runCLI(t, "search", "is-even", "--registry", "npm", "--json"); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("upstream requests after forget = %d, want 1", n)
	}
}

func TestCachePrune(t *testing.T) {
	setupEnv(t, "file")

	first, err := runCLI(t, "search", "is-even", "--json")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}

	// Entries were just written with hour-long TTLs, so nothing is expired.
	out, err := runCLI(t, "cache", "prune")
	if err != nil {
		t.Fatalf("cache prune error: %v", err)
	}
	if !strings.Contains(out, "Pruned 0 cached entries") {
		t.Errorf("cache prune output = %q", out)
	}

	cached, err := runCLI(t, "search", "is-even", "--cache-only", "--json")
	if err != nil {
		t.Fatalf("cache-only search error: %v", err)
	}
	if cached != first {
		t.Errorf("live entries should survive prune: got %s, want %s", cached, first)
	}
}
