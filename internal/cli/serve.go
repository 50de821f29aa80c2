package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindtower/pkg/api"
	"github.com/matzehuels/mindtower/pkg/config"
	"github.com/matzehuels/mindtower/pkg/game"
	"github.com/matzehuels/mindtower/pkg/observability"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

The server exposes stateless layout, render, anchor and score endpoints plus
the mind map library and game sessions of each user. Users are identified by
a request header (X-User-ID unless configured otherwise), so run it behind a
proxy that authenticates requests and sets that header.

Storage is chosen by the [store] section of the config file or
MINDTOWER_STORE: memory, file, redis (sessions) or mongo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if backend != "" {
				cfg.Store.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "store", "", "store backend: memory, file, redis, mongo (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	observability.NewLogHooks(c.Logger).Register()
	defer observability.Reset()

	b, err := openBackends(withLogger(ctx, c.Logger), cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Close(closeCtx); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	games := game.NewService(b.Sessions, b.Maps, game.WithLogger(c.Logger))
	srv := api.New(cfg, b.Maps, games, c.Logger)

	printSuccess("Serving on %s", cfg.Server.Addr)
	printKeyValue("store", cfg.Store.Backend)
	printKeyValue("user header", cfg.Server.UserHeader)
	printInfo("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx)
}
