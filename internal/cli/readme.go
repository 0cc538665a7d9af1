package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	liberrors "github.com/matzehuels/libra/pkg/errors"
	"github.com/matzehuels/libra/pkg/readme"
	"github.com/matzehuels/libra/pkg/registry"
)

// readmeFlags holds the command-line flags for the readme command.
type readmeFlags struct {
	html    bool // print sanitized HTML instead of Markdown
	outline bool // print only the heading outline
}

func (c *CLI) readmeCommand() *cobra.Command {
	var flags readmeFlags

	cmd := &cobra.Command{
		Use:   "readme <registry> <package>",
		Short: "Print a package's README",
		Long: `Print a package's README.

npm and JSR READMEs are Markdown and printed as-is; crates.io serves
rendered HTML, which is converted back to Markdown. With --html every
README is rendered and sanitized instead.`,
		Example: `  libra readme npm is-even
  libra readme crates serde --html
  libra readme jsr @std/path --outline`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: completeRegistryArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			searcher, closeCache, err := c.newSearcher(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			client, ok := searcher.Client(args[0])
			if !ok {
				return liberrors.New(liberrors.ErrCodeInvalidRegistry, "unknown registry %q (want one of %s)",
					args[0], strings.Join(registry.Names(), ", "))
			}
			return showReadme(ctx, cmd.OutOrStdout(), client, args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.html, "html", false, "print sanitized HTML")
	cmd.Flags().BoolVar(&flags.outline, "outline", false, "print only the heading outline")
	cmd.MarkFlagsMutuallyExclusive("html", "outline")

	return cmd
}

// showReadme fetches name's README through client and writes it to out.
func showReadme(ctx context.Context, out io.Writer, client *registry.Client, name string, flags readmeFlags) error {
	reg := client.Registry()
	text, ok := client.Readme(ctx, name)
	if !ok {
		return liberrors.New(liberrors.ErrCodeReadmeNotFound, "no README for %s on %s", name, reg.Label)
	}

	switch {
	case flags.html:
		html, err := readme.ToHTML(text, reg.ReadmeFormat)
		if err != nil {
			return fmt.Errorf("render README: %w", err)
		}
		fmt.Fprintln(out, html)
	case flags.outline:
		html, err := readme.ToHTML(text, reg.ReadmeFormat)
		if err != nil {
			return fmt.Errorf("render README: %w", err)
		}
		headings, err := readme.Headings(html)
		if err != nil {
			return fmt.Errorf("read headings: %w", err)
		}
		for _, h := range headings {
			fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
		}
	default:
		md, err := readme.ToText(text, reg.ReadmeFormat)
		if err != nil {
			return fmt.Errorf("convert README: %w", err)
		}
		fmt.Fprintln(out, strings.TrimRight(md, "\n"))
	}
	return nil
}
