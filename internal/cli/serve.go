package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tidytree/pkg/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		cf      cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  POST /v1/layout   graph + options -> layout JSON
  POST /v1/render   graph or layout + options -> svg, png, pdf or json
  GET  /healthz     build information

The server shares the cache selected by --no-cache, --redis or the config
file, so several instances can share one redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.serverConfig(cmd, addr, timeout)

			runner, err := c.newRunner(ctx, cf)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving layout API")
			printKeyValue("address", cfg.Addr)
			printKeyValue("timeout", cfg.Timeout.String())
			return server.New(runner, c.Logger, cfg).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cf.register(cmd.Flags())

	return cmd
}

// serverConfig merges flags with the [server] section of the config file.
func (c *CLI) serverConfig(cmd *cobra.Command, addr string, timeout time.Duration) server.Config {
	sc := c.config.Server
	cfg := server.Config{
		Addr:         addr,
		Timeout:      timeout,
		MaxBodyBytes: sc.MaxBodyBytes,
	}
	if !cmd.Flags().Changed("addr") && sc.Addr != "" {
		cfg.Addr = sc.Addr
	}
	if !cmd.Flags().Changed("timeout") && sc.Timeout.Duration > 0 {
		cfg.Timeout = sc.Timeout.Duration
	}
	return cfg
}
