package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/qsift/output"
	"github.com/vegasq/qsift/reader"
)

func newSchemaCommand(rootOpts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema <file.parquet|pattern>",
		Short: "List the columns of a parquet file and the property kind each is queried as",
		Long: `List the leaf columns of a parquet file.

The kind column shows how a column is filtered and sorted; columns without a
kind are not exposed as properties. For a glob pattern the first match is read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.New(output.Format(format), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			path, err := firstMatch(args[0])
			if err != nil {
				return err
			}
			if path != args[0] {
				fmt.Fprintf(cmd.ErrOrStderr(), "# Showing schema from: %s\n", path)
			}

			infos, err := reader.ExtractSchemaInfo(path)
			if err != nil {
				return err
			}
			rootOpts.log.Debugw("read schema", "path", path, "columns", len(infos))
			return formatter.Format(schemaRows(infos))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(output.FormatJSON), "output format: jsonl, csv, table")
	return cmd
}

func schemaRows(infos []reader.SchemaInfo) []map[string]any {
	rows := make([]map[string]any, len(infos))
	for i, info := range infos {
		kind := ""
		if k, ok := reader.KindOf(info); ok && !info.Nested() && !info.Repeated {
			kind = k.String()
		}
		rows[i] = map[string]any{
			"name":          info.Name,
			"type":          info.Type,
			"physical_type": info.PhysicalType,
			"logical_type":  info.LogicalType,
			"required":      info.Required,
			"optional":      info.Optional,
			"repeated":      info.Repeated,
			"kind":          kind,
		}
	}
	return rows
}
