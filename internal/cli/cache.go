package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libra/pkg/cache"
	liberrors "github.com/matzehuels/libra/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheForgetCommand())

	return cmd
}

// cacheDir returns the file backend's directory from the configuration.
func (c *CLI) cacheDir() (string, error) {
	opts, err := c.settings().CacheOptions()
	if err != nil {
		return "", err
	}
	if opts.Backend != cache.BackendFile {
		return "", fmt.Errorf("cache backend is %q; only the file backend has a directory", opts.Backend)
	}
	return opts.Dir, nil
}

// fileCache opens the configured file cache. ok is false when the directory
// does not exist yet, in which case there is nothing to sweep.
func (c *CLI) fileCache() (fc *cache.FileCache, ok bool, err error) {
	dir, err := c.cacheDir()
	if err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	if err != nil {
		return nil, false, err
	}
	return fc, true, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached lookup, hits and misses alike",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.OutOrStdout(), "Cleared", (*cache.FileCache).Clear)
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries and keep live ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.sweepCache(cmd.OutOrStdout(), "Pruned", (*cache.FileCache).Prune)
		},
	}
}

func (c *CLI) sweepCache(out io.Writer, verb string, sweep func(*cache.FileCache) (int, error)) error {
	fc, ok, err := c.fileCache()
	if err != nil {
		return err
	}
	if !ok {
		printInfo(out, "Cache is empty")
		return nil
	}
	count, err := sweep(fc)
	if err != nil {
		return err
	}
	printSuccess(out, "%s %d cached entries", verb, count)
	printDetail(out, "Directory: %s", fc.Dir())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheForgetCommand creates the "cache forget" subcommand, which drops the
// cached metadata and README for one name so the next lookup goes upstream.
func (c *CLI) cacheForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "forget <registry> <package>",
		Short:             "Drop the cached lookups for one package",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeRegistryArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher, closeCache, err := c.newSearcher(cmd.Context())
			if err != nil {
				return err
			}
			defer closeCache()

			client, ok := searcher.Client(args[0])
			if !ok {
				return liberrors.New(liberrors.ErrCodeInvalidRegistry, "unknown registry %q", args[0])
			}
			if err := client.Forget(cmd.Context(), args[1]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Forgot %s on %s", StyleHighlight.Render(args[1]), client.Registry().Label)
			return nil
		},
	}
}
