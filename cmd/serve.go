package cmd

import (
	"log/slog"
	"os"

	"github.com/go-authgate/tokenguard/internal/bootstrap"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the token validation server",
		Long: `Start the HTTP server. Configuration is read from the environment and an
optional .env file in the working directory.

Routes:
  GET /connect/accesstokenvalidation   validate ?token= (and optional ?expectedScope=)
  GET /api/me                          echo the caller's bearer token
  GET /health                          dependency health
  GET /metrics                         Prometheus metrics (METRICS_TOKEN protects it)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(os.Stderr)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return bootstrap.Run(cmd.Context(), cfg, logger)
		},
	}
}
