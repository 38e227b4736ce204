package main

import (
	"github.com/spf13/cobra"

	"github.com/helixml/trieve-go/internal/mcp"
)

func stdioCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants list, describe and validate Trieve API request
models. Logs are written to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, logger, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			logger.Info().Str("version", version).Int("models", len(catalog.Names())).Msg("starting MCP server")
			return mcp.NewServer(catalog, version, logger).ServeStdio()
		},
	}
}
