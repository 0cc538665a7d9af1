package registry

import (
	"context"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/integrations/github"
)

const jsrPackageURL = "https://jsr.io/"

// JSR is the JavaScript Registry. Queries may omit the "@" of the scope.
var JSR = &Registry{
	Name:         SourceJSR,
	Label:        "JSR",
	ReadmeFormat: FormatMarkdown,
	Validate:     liberrors.ValidateJsrPackageName,
	Fetch:        fetchJsr,
	FetchReadme:  fetchJsrReadme,
}

func fetchJsr(ctx context.Context, up *Upstream, name string) (*Package, error) {
	scope, pkgName, ok := liberrors.SplitJsrName(name)
	if !ok {
		return nil, liberrors.New(liberrors.ErrCodeInvalidPackage, "invalid JSR package name: %q", name)
	}
	p, err := up.JSR.FetchPackage(ctx, scope, pkgName)
	if err != nil {
		return nil, err
	}
	pkg := &Package{
		Source:      SourceJSR,
		Name:        p.FullName(),
		Version:     p.LatestVersion,
		Description: p.Description,
		URL:         jsrPackageURL + p.FullName(),
	}
	if p.GitHub != nil {
		if u, ok := github.RepoURL(p.GitHub.Owner, p.GitHub.Name); ok {
			pkg.GitHub = u
		}
	}
	return pkg, nil
}

func fetchJsrReadme(ctx context.Context, up *Upstream, name string) (string, error) {
	scope, pkgName, ok := liberrors.SplitJsrName(name)
	if !ok {
		return "", liberrors.New(liberrors.ErrCodeInvalidPackage, "invalid JSR package name: %q", name)
	}
	return up.ESM.JSRReadme(ctx, scope, pkgName)
}
