package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/trieve-go"
	"github.com/helixml/trieve-go/infrastructure/payload"
)

// ErrInvalidPayload is returned by validate when a payload is rejected.
var ErrInvalidPayload = errors.New("invalid payload")

// fileReport is the outcome of validating one file.
type fileReport struct {
	File   string        `json:"file"`
	Report trieve.Report `json:"report"`
}

func validateCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate NAME FILE...",
		Short: "Validate payload files against a model",
		Long: `Validate payload files against a model and its OpenAPI schema.

Files ending in .yaml or .yml are read as YAML, everything else as JSON.
Use - to read a single payload from stdin. The command fails when any
payload is invalid.`,
		Example: `  trieve validate SearchChunksReqPayload search.json
  cat filter.yaml | trieve validate ChunkFilter - --format yaml`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			var forced payload.Format
			if format != "" {
				if forced, err = payload.ParseFormat(format); err != nil {
					return err
				}
			}

			ctx := logger.WithContext(cmd.Context())
			reports, err := validateFiles(ctx, catalog, args[0], args[1:], forced, cmd.InOrStdin(), cfg.Workers())
			if err != nil {
				return err
			}

			var rows [][]string
			invalid := 0
			for _, r := range reports {
				if r.Report.Valid {
					rows = append(rows, []string{r.File, "yes", "", "", ""})
					continue
				}
				invalid++
				for _, v := range r.Report.Violations {
					rows = append(rows, []string{r.File, "no", v.Source, v.Field, v.Reason})
				}
			}
			if err := newPrinter(cmd.OutOrStdout(), cfg.OutputFormat()).print(reports,
				[]string{"File", "Valid", "Source", "Field", "Reason"}, rows); err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d rejected", ErrInvalidPayload, invalid, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Payload format: json, yaml (default: from file extension)")

	return cmd
}

// validateFiles checks every file concurrently and returns the reports in
// argument order.
func validateFiles(ctx context.Context, catalog *trieve.Catalog, name string, files []string, forced payload.Format, stdin io.Reader, workers int) ([]fileReport, error) {
	reports := make([]fileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			data, format, err := readPayload(file, forced, stdin)
			if err != nil {
				return err
			}
			j, err := payload.ToJSON(data, format)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			report, err := catalog.Check(gctx, name, j)
			if err != nil {
				return err
			}
			reports[i] = fileReport{File: file, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func readPayload(file string, forced payload.Format, stdin io.Reader) ([]byte, payload.Format, error) {
	format := forced
	if format == "" {
		format = payload.FormatFromPath(file)
	}
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, format, nil
	}
	data, err := os.ReadFile(file) //nolint:gosec
	if err != nil {
		return nil, "", fmt.Errorf("read payload: %w", err)
	}
	return data, format, nil
}

func convertCmd(flags *globalFlags) *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "convert NAME FILE",
		Short: "Normalize a payload and convert it between JSON and YAML",
		Long: `Decode a payload as the named model, validate it and print it in the
requested format. Unknown keys are dropped; absent optional fields stay absent
and explicit nulls are kept.`,
		Example: `  trieve convert SearchChunksReqPayload search.json --to yaml
  trieve convert ChunkFilter filter.yaml --to json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			var in payload.Format
			if from != "" {
				if in, err = payload.ParseFormat(from); err != nil {
					return err
				}
			}
			out, err := payload.ParseFormat(to)
			if err != nil {
				return err
			}

			data, in, err := readPayload(args[1], in, cmd.InOrStdin())
			if err != nil {
				return err
			}
			converted, err := catalog.Normalize(logger.WithContext(cmd.Context()), args[0], data, in, out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(converted)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Input format: json, yaml (default: from file extension)")
	cmd.Flags().StringVar(&to, "to", string(payload.FormatJSON), "Output format: json, yaml")

	return cmd
}
