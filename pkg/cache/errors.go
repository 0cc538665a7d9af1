package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrClosed is returned by operations on a cache that has been closed.
	ErrClosed = errors.New("cache closed")

	// ErrUnknownBackend is returned by [Open] for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)
