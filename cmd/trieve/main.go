// Package main is the entry point for the trieve CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/internal/config"
	"github.com/helixml/trieve-go/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFile     string
	output      string
	openAPIPath string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "trieve",
		Short: "Typed Trieve API request models",
		Long: `trieve inspects, validates and converts Trieve API request payloads.

Every request model of the Trieve API is available by its schema name, e.g.
SearchChunksReqPayload. Payloads are checked against the Go model and the
OpenAPI document embedded in the binary.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Output format: table, json, yaml (default: table)")
	cmd.PersistentFlags().StringVar(&flags.openAPIPath, "openapi", "", "OpenAPI document to use instead of the embedded one")

	cmd.AddCommand(modelsCmd(&flags))
	cmd.AddCommand(describeCmd(&flags))
	cmd.AddCommand(validateCmd(&flags))
	cmd.AddCommand(convertCmd(&flags))
	cmd.AddCommand(conformanceCmd(&flags))
	cmd.AddCommand(serveCmd(&flags))
	cmd.AddCommand(stdioCmd(&flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the global flags.
func loadConfig(flags *globalFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flags.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	var opts []config.AppConfigOption
	if flags.output != "" {
		format, err := config.ParseOutputFormat(flags.output)
		if err != nil {
			return config.AppConfig{}, err
		}
		opts = append(opts, config.WithOutputFormat(format))
	}
	if flags.openAPIPath != "" {
		opts = append(opts, config.WithOpenAPIPath(flags.openAPIPath))
	}
	return cfg.Apply(opts...), nil
}

// newCatalog builds the model catalog for cfg.
func newCatalog(cfg config.AppConfig, logger zerolog.Logger) (*trieve.Catalog, error) {
	catalog, err := trieve.New(
		trieve.WithLogger(logger),
		trieve.WithOpenAPIPath(cfg.OpenAPIPath()),
		trieve.WithWorkers(cfg.Workers()),
	)
	if err != nil {
		return nil, fmt.Errorf("create catalog: %w", err)
	}
	return catalog, nil
}

// setup loads configuration, the logger and the catalog in one step.
func setup(flags *globalFlags) (config.AppConfig, zerolog.Logger, *trieve.Catalog, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return config.AppConfig{}, zerolog.Nop(), nil, err
	}
	logger := log.NewLogger(cfg)
	catalog, err := newCatalog(cfg, logger)
	if err != nil {
		return config.AppConfig{}, zerolog.Nop(), nil, err
	}
	return cfg, logger, catalog, nil
}
