package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/qsift/internal/config"
	"github.com/vegasq/qsift/internal/logger"
	"github.com/vegasq/qsift/policy"
)

// rootOptions holds global flags and what PersistentPreRunE builds from them.
type rootOptions struct {
	configPath string
	verbose    bool
	logJSON    bool

	cfg *config.Config
	log *zap.SugaredLogger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "qsift",
		Short: "Filter, sort and page parquet records",
		Long: `qsift applies compact filter, sort and paging strings to parquet records.

Filters are comma-separated nodes that must all match, e.g. "age>=21,city=Oslo|Rome".
A node may name several properties, "name|nickname=amy", and matches when any of
them equals any value. Sorts list properties with an optional direction,
e.g. "age desc,name". Escape , | = ! < > with a backslash to use them literally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.NewWithWriter(cmd.ErrOrStderr(), opts.logJSON, opts.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./qsift.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	cmd.AddCommand(newQueryCommand(opts))
	cmd.AddCommand(newSchemaCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

// capabilityFlags switch capabilities off for one invocation.
type capabilityFlags struct {
	noFilter bool
	noSort   bool
	noPage   bool
}

func (f *capabilityFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noFilter, "no-filter", false, "disable filtering")
	cmd.Flags().BoolVar(&f.noSort, "no-sort", false, "disable sorting")
	cmd.Flags().BoolVar(&f.noPage, "no-page", false, "disable paging and return every match")
}

// overrides leaves unset every capability whose flag was not given, so the
// entity and global settings decide.
func (f *capabilityFlags) overrides() policy.Overrides {
	var o policy.Overrides
	if f.noFilter {
		o.Filtering = policy.Disabled
	}
	if f.noSort {
		o.Sorting = policy.Disabled
	}
	if f.noPage {
		o.Paging = policy.Disabled
	}
	return o
}
