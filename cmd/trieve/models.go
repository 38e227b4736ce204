package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helixml/trieve-go/domain/model"
)

func modelsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the Trieve API request models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			summaries := catalog.Models()
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.Name,
					s.Package,
					strconv.Itoa(s.Fields),
					strings.Join(s.Required, ", "),
					yesNo(s.Union),
				})
			}
			return newPrinter(cmd.OutOrStdout(), cfg.OutputFormat()).print(summaries,
				[]string{"Name", "Package", "Fields", "Required", "Union"}, rows)
		},
	}
}

func describeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show the JSON fields of a model",
		Example: `  trieve describe SearchChunksReqPayload
  trieve describe ChunkFilter -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, catalog, err := setup(flags)
			if err != nil {
				return err
			}

			desc, err := catalog.Describe(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(desc.Fields))
			for _, f := range desc.Fields {
				rows = append(rows, []string{
					f.Name,
					typeName(f),
					yesNo(f.Required),
					yesNo(f.Nullable),
					strings.Join(f.Enum, " | "),
				})
			}
			return newPrinter(cmd.OutOrStdout(), cfg.OutputFormat()).print(desc,
				[]string{"Field", "Type", "Required", "Nullable", "Values"}, rows)
		},
	}
}

// typeName renders a field type as e.g. "array<FieldCondition>".
func typeName(f model.Field) string {
	switch {
	case f.Ref != "":
		return f.Ref
	case f.Type == model.TypeArray && f.Items != nil:
		return "array<" + typeName(*f.Items) + ">"
	case f.Type == model.TypeObject && f.Items != nil:
		return "map<" + typeName(*f.Items) + ">"
	case f.Format != "":
		return f.Type + "(" + f.Format + ")"
	case f.Type == "":
		return "any"
	}
	return f.Type
}
