package registry

import (
	"context"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/integrations/github"
)

const cratesPackageURL = "https://crates.io/crates/"

// Crates is crates.io. Its READMEs arrive as rendered HTML.
var Crates = &Registry{
	Name:         SourceCrates,
	Label:        "crates.io",
	ReadmeFormat: FormatHTML,
	Validate:     liberrors.ValidateCratesPackageName,
	Fetch:        fetchCrate,
	FetchReadme:  fetchCrateReadme,
}

func fetchCrate(ctx context.Context, up *Upstream, name string) (*Package, error) {
	c, err := up.Crates.FetchCrate(ctx, name)
	if err != nil {
		return nil, err
	}
	pkg := &Package{
		Source:      SourceCrates,
		Name:        c.Name,
		Version:     c.Version,
		Description: c.Description,
		URL:         cratesPackageURL + c.Name,
	}
	// crates.io repository URLs are already canonical; keep them as given.
	if github.IsGitHubURL(c.Repository) {
		pkg.GitHub = c.Repository
	}
	return pkg, nil
}

func fetchCrateReadme(ctx context.Context, up *Upstream, name string) (string, error) {
	return up.Crates.FetchLatestReadme(ctx, name)
}
