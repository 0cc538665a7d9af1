// Package cache stores registry response snapshots with per-entry expiry.
//
// # Overview
//
// Every registry lookup in Libra writes its outcome back to a [Cache],
// including failures. Found packages and READMEs are kept for a short
// time; not-found and upstream-error outcomes are kept much longer so a
// package that does not exist is not requested again and again. The two
// durations come from a [TTLPolicy].
//
// # Backends
//
//   - [MemoryCache]: process-local map, with an injectable clock for tests
//   - [FileCache]: JSON files under ~/.cache/libra/ for CLI usage
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are built by a [Keyer] from a namespace, the registry, the
// operation (package metadata or readme) and the URL-encoded validated
// query, so metadata and README entries for the same name never collide.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Implementations must be safe for concurrent use. Set overwrites any
// existing entry for key.
type Cache interface {
	// Get returns the stored bytes and true on a fresh hit. Expired and
	// missing entries are reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLClass selects how long an outcome stays cached.
type TTLClass int

const (
	// Positive is used for found packages and fetched READMEs.
	Positive TTLClass = iota
	// Negative is used for not-found and upstream-error outcomes.
	Negative
)

func (c TTLClass) String() string {
	if c == Negative {
		return "negative"
	}
	return "positive"
}

// Default TTLs for each class.
const (
	DefaultPositiveTTL = time.Hour
	DefaultNegativeTTL = 24 * time.Hour
)

// TTLPolicy maps TTL classes to durations.
type TTLPolicy struct {
	Positive time.Duration
	Negative time.Duration
}

// DefaultTTLPolicy returns the 1 hour / 24 hour policy.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{Positive: DefaultPositiveTTL, Negative: DefaultNegativeTTL}
}

// WithDefaults returns a copy of p with non-positive durations replaced by defaults.
func (p TTLPolicy) WithDefaults() TTLPolicy {
	if p.Positive <= 0 {
		p.Positive = DefaultPositiveTTL
	}
	if p.Negative <= 0 {
		p.Negative = DefaultNegativeTTL
	}
	return p
}

// TTL returns the duration for class c.
func (p TTLPolicy) TTL(c TTLClass) time.Duration {
	if c == Negative {
		return p.Negative
	}
	return p.Positive
}
