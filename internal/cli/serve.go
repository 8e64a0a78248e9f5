package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP service
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree reports over HTTP",
		Long: `Serve exposes POST /v1/reports, which renders the JSON document in the
request body in the format named by the "format" query parameter.`,
		Example: `  doctree serve --addr :9090
  curl -s --data-binary @policy.json 'localhost:9090/v1/reports?format=text'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", cfg.Server.Addr)
			return server.New(runner, cfg.Server, loggerFromContext(ctx)).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":8080\")")
	return cmd
}
