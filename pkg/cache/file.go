package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// entryExt marks files written by [FileCache]. Anything else under the
// directory is left alone.
const entryExt = ".json"

// FileCache stores each entry as a JSON file under dir, sharded by the first
// byte of the key's SHA-256 so no single directory grows too large. It is the
// CLI's default backend: lookups survive between invocations without a server.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// fileEntry is the on-disk form. Key is stored so a file can be traced back
// to the lookup that wrote it.
type fileEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

func (e *fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Dir returns the directory entries are stored in.
func (c *FileCache) Dir() string { return c.dir }

// Get reads key. Expired, unreadable or mismatched entries are removed and
// reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	e, err := readEntry(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		if errors.Is(err, errCorruptEntry) {
			_ = os.Remove(path)
			return nil, false, nil
		}
		return nil, false, err
	}
	if e.Key != key || e.expired(c.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes key atomically: the entry goes to a temp file that is renamed
// into place, so concurrent CLI runs never read a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := c.now()
	e := fileEntry{Key: key, Data: data, StoredAt: now}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// Clear removes every entry and any shard directories left empty. It
// returns the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(string) bool { return true })
}

// Prune removes expired and unreadable entries, keeping live ones. It
// returns the number of entries removed.
func (c *FileCache) Prune() (int, error) {
	now := c.now()
	return c.sweep(func(path string) bool {
		e, err := readEntry(path)
		return err != nil || e.expired(now)
	})
}

// sweep removes each entry file for which drop reports true, then removes
// emptied shard directories. The root directory is always kept.
func (c *FileCache) sweep(drop func(path string) bool) (int, error) {
	removed := 0
	var shards []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.dir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != c.dir {
				shards = append(shards, path)
			}
			return nil
		}
		if !strings.HasSuffix(path, entryExt) || !drop(path) {
			return nil
		}
		if err := os.Remove(path); err == nil {
			removed++
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return removed, err
	}
	// os.Remove refuses non-empty directories, which is what we want.
	for i := len(shards) - 1; i >= 0; i-- {
		_ = os.Remove(shards[i])
	}
	return removed, nil
}

// path maps key to <dir>/<2 hex chars>/<remaining 62 hex chars>.json.
func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, name[:2], name[2:]+entryExt)
}

var errCorruptEntry = errors.New("corrupt cache entry")

func readEntry(path string) (*fileEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.Key == "" {
		return nil, errCorruptEntry
	}
	return &e, nil
}

var _ Cache = (*FileCache)(nil)
