package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixml/trieve-go/infrastructure/openapi"
)

// ErrDrift is returned by conformance when a model disagrees with its schema.
var ErrDrift = errors.New("models drift from the OpenAPI document")

func conformanceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "conformance",
		Short: "Compare every model with its OpenAPI schema",
		Long: `Compare every Go model with the schema of the same name in the OpenAPI
document: properties, required keys, nullability, types, enums and nested
references. The command fails when any disagreement is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			findings, err := catalog.Conformance(logger.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			if findings == nil {
				findings = []openapi.Finding{}
			}

			rows := make([][]string, 0, len(findings))
			for _, f := range findings {
				rows = append(rows, []string{f.Model, f.Field, f.Problem})
			}
			if err := newPrinter(cmd.OutOrStdout(), cfg.OutputFormat()).print(findings,
				[]string{"Model", "Field", "Problem"}, rows); err != nil {
				return err
			}
			if len(findings) > 0 {
				return fmt.Errorf("%w: %d findings", ErrDrift, len(findings))
			}
			return nil
		},
	}
}
