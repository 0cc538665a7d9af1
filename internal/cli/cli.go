package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libra/pkg/buildinfo"
	"github.com/matzehuels/libra/pkg/cache"
	"github.com/matzehuels/libra/pkg/config"
	"github.com/matzehuels/libra/pkg/httputil"
	"github.com/matzehuels/libra/pkg/observability"
	"github.com/matzehuels/libra/pkg/registry"
	"github.com/matzehuels/libra/pkg/search"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Libra looks up packages on npm, JSR and crates.io",
		Long: `Libra searches npm, JSR and crates.io for a package name in one go and
shows what each registry knows about it. Lookups are cached, including misses,
so repeated searches are served locally.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/libra/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.readmeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and routes lookup events to the logger.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	observability.NewLogHooks(c.Logger).Install()
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (tests, completion).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Searcher Factory
// =============================================================================

// newSearcher builds a Searcher from the configuration. The returned close
// function releases the cache backend.
func (c *CLI) newSearcher(ctx context.Context) (*search.Searcher, func() error, error) {
	cfg := c.settings()

	store, err := newCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	up := registry.NewUpstream(httputil.NewClient(cfg.HTTPOptions()), registry.BaseURLs{
		NPM:    cfg.Upstream.NPM,
		JSR:    cfg.Upstream.JSR,
		Crates: cfg.Upstream.Crates,
		ESM:    cfg.Upstream.ESM,
	})

	s := search.NewDefault(up, store, c.Logger,
		registry.WithKeyer(cache.NewKeyer(cfg.Cache.Namespace)),
		registry.WithTTLPolicy(cfg.TTLPolicy()),
	)
	return s, store.Close, nil
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", opts.Backend, err)
	}
	return store, nil
}
