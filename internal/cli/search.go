package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/registry"
	"github.com/matzehuels/libra/pkg/search"
)

// searchFlags holds the command-line flags for the search command.
type searchFlags struct {
	registry    string // restrict to one registry
	cacheOnly   bool   // never contact upstream registries
	jsonOut     bool   // print JSON instead of a table
	interactive bool   // pick a result and print its README
}

// registryResult is the JSON shape of a single-registry search.
type registryResult struct {
	Query  string            `json:"query"`
	Result *registry.Package `json:"result"`
}

func (c *CLI) searchCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Look a package name up on npm, JSR and crates.io",
		Long: `Look a package name up on every registry at once.

Each registry is asked for the exact name; names a registry does not accept
(for example "@std/path" on crates.io) are skipped for that registry.`,
		Example: `  libra search serde
  libra search @std/path --registry jsr
  libra search is-even --json
  libra search react --cache-only`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: completeNothing,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd, strings.Join(args, " "), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.registry, "registry", "r", "", "search one registry ("+strings.Join(registry.Names(), ", ")+")")
	cmd.Flags().BoolVar(&flags.cacheOnly, "cache-only", false, "answer from the cache only")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print results as JSON")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick a result and show its README")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	_ = cmd.RegisterFlagCompletionFunc("registry", completeRegistryFlag)

	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, query string, flags searchFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	searcher, closeCache, err := c.newSearcher(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	var client *registry.Client
	if flags.registry != "" {
		var ok bool
		client, ok = searcher.Client(flags.registry)
		if !ok {
			return liberrors.New(liberrors.ErrCodeInvalidRegistry, "unknown registry %q (want one of %s)",
				flags.registry, strings.Join(registry.Names(), ", "))
		}
	}

	var spinner *Spinner
	if !flags.jsonOut {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Searching for %s...", query))
		spinner.Start()
	}
	prog := newProgress(c.Logger)

	var res search.Results
	if client != nil {
		res = searchOne(ctx, client, query, flags.cacheOnly)
	} else {
		res = searcher.Search(ctx, query, search.Options{CacheOnly: flags.cacheOnly})
	}

	if spinner != nil {
		spinner.Stop()
	}
	prog.done(fmt.Sprintf("Searched for %q", res.Query))

	if flags.jsonOut {
		if client != nil {
			var pkg *registry.Package
			if len(res.Packages) > 0 {
				pkg = &res.Packages[0]
			}
			return writeJSON(out, registryResult{Query: res.Query, Result: pkg})
		}
		return writeJSON(out, res)
	}

	if len(res.Packages) == 0 {
		printInfo(out, "No packages named %s", StyleHighlight.Render(query))
		if flags.cacheOnly {
			printDetail(out, "Only cached lookups were consulted")
		}
		return nil
	}

	if flags.interactive {
		return c.pickAndShow(ctx, out, searcher, res.Packages)
	}

	fmt.Fprintln(out, resultsTable(res.Packages))
	if client == nil {
		printCounts(out, res.Count)
	}
	printNewline(out)
	printNextStep(out, "README", fmt.Sprintf("libra readme %s %s", res.Packages[0].Source, res.Packages[0].Name))
	return nil
}

// searchOne runs a single-registry search and wraps it like an aggregate.
func searchOne(ctx context.Context, client *registry.Client, query string, cacheOnly bool) search.Results {
	q := strings.TrimSpace(query)
	res := search.Results{Query: q, Packages: []registry.Package{}}
	if q == "" {
		return res
	}
	if pkg := client.Search(ctx, q, registry.SearchOptions{CacheOnly: cacheOnly}); pkg != nil {
		res.Packages = append(res.Packages, *pkg)
		res.Count.Total = 1
		switch pkg.Source {
		case registry.SourceNPM:
			res.Count.NPM = 1
		case registry.SourceJSR:
			res.Count.JSR = 1
		case registry.SourceCrates:
			res.Count.Crates = 1
		}
	}
	return res
}

// pickAndShow lets the user choose a result and prints its README.
func (c *CLI) pickAndShow(ctx context.Context, out io.Writer, searcher *search.Searcher, pkgs []registry.Package) error {
	final, err := tea.NewProgram(NewPackageListModel(pkgs), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(PackageListModel)
	if !ok || m.Selected == nil {
		printDetail(out, "No selection made")
		return nil
	}

	client, ok := searcher.Client(string(m.Selected.Source))
	if !ok {
		return liberrors.New(liberrors.ErrCodeInvalidRegistry, "unknown registry %q", m.Selected.Source)
	}
	printPackage(out, *m.Selected)
	printNewline(out)
	return showReadme(ctx, out, client, m.Selected.Name, readmeFlags{})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
