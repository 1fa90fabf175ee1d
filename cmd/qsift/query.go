package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/vegasq/qsift/output"
	"github.com/vegasq/qsift/query"
)

type queryOptions struct {
	filter   string
	sort     string
	page     int
	pageSize int
	entity   string
	format   string
	caps     capabilityFlags
}

func newQueryCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file.parquet|pattern>",
		Short: "Print the records matching a filter, in order, one page at a time",
		Example: `  qsift query people.parquet --filter "age>=21" --sort "age desc"
  qsift query "data/*.parquet" --filter "city=Oslo|Rome" --page 2 --page-size 20 --format table
  qsift query people.parquet --filter 'name=Smith\, Pat' --no-page --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := query.Request{Filter: opts.filter, Sort: opts.sort}
			if cmd.Flags().Changed("page") {
				req.Page = &opts.page
			}
			if cmd.Flags().Changed("page-size") {
				req.PageSize = &opts.pageSize
			}
			return runQuery(cmd, rootOpts, opts, args[0], req)
		},
	}

	cmd.Flags().StringVar(&opts.filter, "filter", "", "filter string, e.g. \"age>20,name=Amy|Joe\"")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort string, e.g. \"age desc,name\"")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number, from 1")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "records per page (default from the entity policy)")
	cmd.Flags().StringVar(&opts.entity, "entity", "", "entity name in the config (default the file name)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(output.FormatJSON), "output format: jsonl, csv, table")
	opts.caps.register(cmd)

	return cmd
}

func runQuery(cmd *cobra.Command, rootOpts *rootOptions, opts *queryOptions, path string, req query.Request) error {
	formatter, err := output.New(output.Format(opts.format), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	data, err := loadDataset(rootOpts, path, opts.entity, opts.caps.overrides())
	if err != nil {
		return err
	}

	plan, err := query.Prepare(req, data.policy)
	if err != nil {
		return err
	}
	rootOpts.log.Debugw("prepared query",
		"filter_nodes", len(plan.Filter.Nodes),
		"sort_nodes", len(plan.Sort.Nodes),
		"page", plan.Page.Number,
		"page_size", plan.Page.Size,
		"paged", plan.Page.Enabled)

	records, err := plan.Apply(slices.Values(data.records)).Collect()
	if err != nil {
		return err
	}
	return formatter.Format(records)
}
