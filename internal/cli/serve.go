package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libra/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Long: `Run the HTTP search API until interrupted.

Routes:
  GET /api/search?q=<query>
  GET /api/search/{npm|jsr|crates}?q=<query>
  GET /api/preview?q=<query>
  GET /api/packages/{registry}/<name>
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			searcher, closeCache, err := c.newSearcher(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			c.Logger.Info("cache", "backend", cfg.Cache.Backend,
				"positive_ttl", cfg.TTLPolicy().Positive, "negative_ttl", cfg.TTLPolicy().Negative)

			srv := server.New(searcher,
				server.WithLogger(c.Logger),
				server.WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout)),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")

	return cmd
}
