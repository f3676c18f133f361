package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve chart synchronization over HTTP for documents in the configured store.

Routes:
  GET  /healthz
  GET  /v1/chart-types
  GET  /v1/documents/{id}
  PUT  /v1/documents/{id}
  POST /v1/documents/{id}/sync
  POST /v1/documents/{id}/unlink`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			store, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			client, renderCache, err := c.newClient(ctx, noCache)
			if err != nil {
				return err
			}
			defer renderCache.Close()

			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			printDetail("Render endpoint: %s", client.BaseURL())
			printDetail("Document store: %s", c.Config.Store.Backend)

			return server.New(store, client, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
