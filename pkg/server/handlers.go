package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/libra/pkg/buildinfo"
	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/readme"
	"github.com/matzehuels/libra/pkg/registry"
	"github.com/matzehuels/libra/pkg/search"
)

type errorResponse struct {
	Error string         `json:"error"`
	Code  liberrors.Code `json:"code,omitempty"`
}

var (
	errUnknownRegistry = liberrors.New(liberrors.ErrCodeInvalidRegistry, "unknown registry")
	errPackageNotFound = liberrors.New(liberrors.ErrCodePackageNotFound, "package not found")
	errQueryRequired   = liberrors.New(liberrors.ErrCodeInvalidInput, "query parameter q is required")
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type registryResponse struct {
	Query  string            `json:"query"`
	Result *registry.Package `json:"result"`
}

type previewResponse struct {
	Query   string             `json:"query"`
	Results []registry.Package `json:"results"`
}

// PackageResponse is the body of GET /api/packages/{registry}/<name>.
type PackageResponse struct {
	Registry   registry.Source  `json:"registry"`
	Label      string           `json:"label"`
	Package    registry.Package `json:"package"`
	ReadmeHTML string           `json:"readme_html"`
	Headings   []readme.Heading `json:"headings"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Short()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, ok := requireQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.searcher.Search(r.Context(), q, search.Options{}))
}

func (s *Server) handleSearchRegistry(w http.ResponseWriter, r *http.Request) {
	client, ok := s.searcher.Client(chi.URLParam(r, "registry"))
	if !ok {
		writeError(w, errUnknownRegistry)
		return
	}
	q, ok := requireQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, registryResponse{
		Query:  q,
		Result: client.Search(r.Context(), q, registry.SearchOptions{}),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, previewResponse{
		Query:   q,
		Results: s.searcher.SearchCacheOnly(r.Context(), q),
	})
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	client, ok := s.searcher.Client(chi.URLParam(r, "registry"))
	if !ok {
		writeError(w, errUnknownRegistry)
		return
	}
	name := strings.TrimSpace(chi.URLParam(r, "*"))
	if name == "" {
		writeError(w, errPackageNotFound)
		return
	}

	var (
		pkg  *registry.Package
		text string
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		pkg = client.Search(ctx, name, registry.SearchOptions{})
		return nil
	})
	g.Go(func() error {
		text, _ = client.Readme(ctx, name)
		return nil
	})
	_ = g.Wait()

	if pkg == nil {
		writeError(w, errPackageNotFound)
		return
	}

	resp := PackageResponse{
		Registry: client.Registry().Name,
		Label:    client.Registry().Label,
		Package:  *pkg,
		Headings: []readme.Heading{},
	}
	if text != "" {
		resp.ReadmeHTML, resp.Headings = s.renderReadme(r.Context(), text, client.Registry())
	}
	writeJSON(w, http.StatusOK, resp)
}

// renderReadme degrades to an empty README when rendering fails.
func (s *Server) renderReadme(ctx context.Context, text string, reg *registry.Registry) (string, []readme.Heading) {
	html, err := readme.ToHTML(text, reg.ReadmeFormat)
	if err != nil {
		s.logger.Warn("render readme", "registry", reg.Name, "error", err, "request_id", RequestID(ctx))
		return "", []readme.Heading{}
	}
	headings, err := readme.Headings(html)
	if err != nil || headings == nil {
		headings = []readme.Heading{}
	}
	return html, headings
}

// requireQuery returns the q parameter as sent. Responses echo it verbatim;
// the registry clients trim it before validating.
func requireQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, errQueryRequired)
		return "", false
	}
	return q, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with the status [liberrors.HTTPStatus] picks for err.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, liberrors.HTTPStatus(err), errorResponse{
		Error: liberrors.UserMessage(err),
		Code:  liberrors.GetCode(err),
	})
}
