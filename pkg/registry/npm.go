package registry

import (
	"context"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/integrations/github"
)

const npmPackageURL = "https://www.npmjs.com/package/"

// NPM is the npm registry.
var NPM = &Registry{
	Name:         SourceNPM,
	Label:        "npm",
	ReadmeFormat: FormatMarkdown,
	Validate:     liberrors.ValidateNpmPackageName,
	Fetch:        fetchNpm,
	FetchReadme:  fetchNpmReadme,
}

func fetchNpm(ctx context.Context, up *Upstream, name string) (*Package, error) {
	p, err := up.NPM.FetchLatest(ctx, name)
	if err != nil {
		return nil, err
	}
	pkg := &Package{
		Source:      SourceNPM,
		Name:        p.Name,
		Version:     p.Version,
		Description: p.Description,
		URL:         npmPackageURL + p.Name,
	}
	if len(p.Maintainers) > 0 {
		pkg.Author = p.Maintainers[0]
	}
	if u, ok := github.FromURL(p.Repository); ok {
		pkg.GitHub = u
	}
	return pkg, nil
}

func fetchNpmReadme(ctx context.Context, up *Upstream, name string) (string, error) {
	return up.ESM.NpmReadme(ctx, name)
}
