package cache

import (
	"net/url"
	"strings"
)

// DefaultNamespace prefixes every key built by [NewDefaultKeyer].
const DefaultNamespace = "libra"

// Operations distinguish entries for the same registry and name.
const (
	OpPackage = "package"
	OpReadme  = "readme"
)

// Keyer builds deterministic cache keys.
type Keyer interface {
	// PackageKey returns the key for a package metadata lookup.
	PackageKey(registry, query string) string
	// ReadmeKey returns the key for a README fetch.
	ReadmeKey(registry, query string) string
}

// DefaultKeyer builds keys of the form namespace:registry:operation:query.
type DefaultKeyer struct {
	namespace string
}

// NewDefaultKeyer returns a Keyer using [DefaultNamespace].
func NewDefaultKeyer() Keyer {
	return NewKeyer(DefaultNamespace)
}

// NewKeyer returns a Keyer using the given namespace. An empty namespace
// falls back to [DefaultNamespace].
func NewKeyer(namespace string) Keyer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &DefaultKeyer{namespace: namespace}
}

// PackageKey returns the key for a package metadata lookup.
func (k *DefaultKeyer) PackageKey(registry, query string) string {
	return k.key(registry, OpPackage, query)
}

// ReadmeKey returns the key for a README fetch.
func (k *DefaultKeyer) ReadmeKey(registry, query string) string {
	return k.key(registry, OpReadme, query)
}

func (k *DefaultKeyer) key(registry, op, query string) string {
	return strings.Join([]string{k.namespace, registry, op, url.QueryEscape(query)}, ":")
}
