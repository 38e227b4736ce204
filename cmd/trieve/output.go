package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/helixml/trieve-go/infrastructure/payload"
	"github.com/helixml/trieve-go/internal/config"
)

// printer renders command results as a table, JSON or YAML.
type printer struct {
	w      io.Writer
	format config.OutputFormat
}

func newPrinter(w io.Writer, format config.OutputFormat) printer {
	return printer{w: w, format: format}
}

// print writes v in the structured formats, or the rows as a table.
func (p printer) print(v any, headers []string, rows [][]string) error {
	switch p.format {
	case config.OutputJSON, config.OutputYAML:
		return p.structured(v)
	}
	return p.table(headers, rows)
}

func (p printer) structured(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	format := payload.FormatJSON
	if p.format == config.OutputYAML {
		format = payload.FormatYAML
	}
	out, err := payload.FromJSON(data, format)
	if err != nil {
		return err
	}
	_, err = p.w.Write(out)
	return err
}

func (p printer) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(p.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return table.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
