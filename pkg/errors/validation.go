package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	npmMaxNameLength    = 214
	cratesMaxNameLength = 64
)

// npmPackageNameRegex matches valid npm package names, optionally scoped.
// Names start with a lowercase letter or digit, so leading "." and "_" are rejected.
var npmPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9][a-z0-9._-]*/)?[a-z0-9][a-z0-9._-]*$`)

// ValidateNpmPackageName validates an npm package name and returns it trimmed.
func ValidateNpmPackageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", New(ErrCodeInvalidPackage, "package name is required")
	}
	if n := utf8.RuneCountInString(name); n > npmMaxNameLength {
		return "", New(ErrCodeInvalidPackage, "npm package name too long (max %d characters)", npmMaxNameLength)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", New(ErrCodeInvalidPackage, "npm package name cannot contain spaces: %q", name)
	}
	if !npmPackageNameRegex.MatchString(name) {
		return "", New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}
	return name, nil
}

// jsrPackageNameRegex matches @scope/name or scope/name. Each segment is
// 2-58 characters of lowercase letters, digits and hyphens, and cannot
// start or end with a hyphen.
var jsrPackageNameRegex = regexp.MustCompile(`^@?[a-z0-9][a-z0-9-]{0,56}[a-z0-9]/[a-z0-9][a-z0-9-]{0,56}[a-z0-9]$`)

// ValidateJsrPackageName validates a JSR package name and returns it trimmed.
// The leading "@" is optional and preserved as given.
func ValidateJsrPackageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", New(ErrCodeInvalidPackage, "package name is required")
	}
	if !jsrPackageNameRegex.MatchString(name) {
		return "", New(ErrCodeInvalidPackage, "invalid JSR package name: %q (expected @scope/name)", name)
	}
	return name, nil
}

// cratesPackageNameRegex matches valid crates.io package names.
var cratesPackageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateCratesPackageName validates a crates.io package name and returns it trimmed.
func ValidateCratesPackageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", New(ErrCodeInvalidPackage, "package name is required")
	}
	if len(name) > cratesMaxNameLength {
		return "", New(ErrCodeInvalidPackage, "crate name too long (max %d characters)", cratesMaxNameLength)
	}
	if !cratesPackageNameRegex.MatchString(name) {
		return "", New(ErrCodeInvalidPackage, "invalid crates.io package name: %q", name)
	}
	return name, nil
}

// SplitJsrName splits a validated JSR name into scope and package name.
// Both "@std/path" and "std/path" yield ("std", "path").
func SplitJsrName(name string) (scope, pkg string, ok bool) {
	scope, pkg, ok = strings.Cut(strings.TrimPrefix(name, "@"), "/")
	return scope, pkg, ok && scope != "" && pkg != ""
}
