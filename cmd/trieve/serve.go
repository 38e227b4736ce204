package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/trieve-go/infrastructure/api"
	"github.com/helixml/trieve-go/internal/config"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (the TRIEVE_ prefix is optional):
  TRIEVE_HOST              Server host to bind to (default: 0.0.0.0)
  TRIEVE_PORT              Server port to listen on (default: 8080)
  TRIEVE_LOG_LEVEL         Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  TRIEVE_LOG_FORMAT        Log format: pretty, json (default: pretty)
  TRIEVE_OPENAPI_PATH      OpenAPI document replacing the embedded one
  TRIEVE_WORKERS           Concurrent validations (default: number of CPUs)
  TRIEVE_CORS_ORIGINS      Comma-separated allowed origins (default: *)
  TRIEVE_REQUEST_TIMEOUT   Request timeout in seconds (default: 30)
  TRIEVE_MAX_BODY_BYTES    Largest accepted request body (default: 1048576)`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(flags, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(flags *globalFlags, host string, port int) error {
	cfg, logger, catalog, err := setup(flags)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger.Info().Str("version", version).Object("config", cfg).Msg("starting trieve")

	apiServer := api.NewAPIServer(catalog, cfg, version)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	if err := apiServer.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
