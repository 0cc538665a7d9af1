package github

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// BaseURL is the canonical GitHub web origin.
const BaseURL = "https://github.com"

// ErrInvalidRepo is returned for owner or repository names GitHub would not accept.
var ErrInvalidRepo = errors.New("invalid github repository")

var (
	// Users and orgs: 1-39 alphanumerics or hyphens, no leading hyphen.
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// Repositories: 1-100 alphanumerics, hyphens, underscores or dots.
	validName = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)

	// repoPattern captures owner and repo from https, ssh and git+ URLs.
	repoPattern = regexp.MustCompile(`github\.com[/:]([^/]+)/([^/#?\s]+)`)
)

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

// ParseRepo parses and validates an "owner/repo" reference.
func ParseRepo(ref string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return Repo{}, fmt.Errorf("%w: %q is not owner/repo", ErrInvalidRepo, ref)
	}
	r := Repo{Owner: owner, Name: name}
	if err := r.Validate(); err != nil {
		return Repo{}, err
	}
	return r, nil
}

// Validate checks both parts against GitHub's naming rules.
func (r Repo) Validate() error {
	if !validOwner.MatchString(r.Owner) {
		return fmt.Errorf("%w: owner %q", ErrInvalidRepo, r.Owner)
	}
	if !validName.MatchString(r.Name) || r.Name == "." || r.Name == ".." {
		return fmt.Errorf("%w: name %q", ErrInvalidRepo, r.Name)
	}
	return nil
}

// String returns "owner/repo".
func (r Repo) String() string { return r.Owner + "/" + r.Name }

// URL returns the repository's web URL.
func (r Repo) URL() string { return BaseURL + "/" + r.String() }

// FromURL extracts a canonical repository URL from a free-form repository
// URL such as "git+https://github.com/owner/repo.git" or
// "git@github.com:owner/repo". It returns false if raw does not point at a
// valid github.com repository.
func FromURL(raw string) (string, bool) {
	m := repoPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return RepoURL(m[1], strings.TrimSuffix(m[2], ".git"))
}

// RepoURL builds the canonical URL for owner/repo. Both parts must be
// valid GitHub names.
func RepoURL(owner, repo string) (string, bool) {
	r := Repo{Owner: owner, Name: repo}
	if r.Validate() != nil {
		return "", false
	}
	return r.URL(), true
}

// IsGitHubURL reports whether raw mentions github.com.
func IsGitHubURL(raw string) bool {
	return strings.Contains(raw, "github.com")
}
