// Package github parses and validates GitHub repository references.
//
// # Overview
//
// Registries describe source repositories in different shapes. npm has a
// free-form repository URL, JSR a structured owner/name pair, and crates.io
// a plain URL. This package turns those into the canonical
// https://github.com/<owner>/<repo> form shown next to search results.
//
// # Usage
//
//	u, ok := github.FromURL("git+https://github.com/i-voted-for-trump/is-even.git")
//	// u == "https://github.com/i-voted-for-trump/is-even"
//
//	u, ok = github.RepoURL("denoland", "std")
//	// u == "https://github.com/denoland/std"
//
// # Validation
//
// [ParseRepo] and [Repo.Validate] check owner and
// repository names against GitHub's naming rules.
package github
