package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vegasq/qsift/internal/server"
)

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var (
		addr   string
		entity string
		caps   capabilityFlags
	)

	cmd := &cobra.Command{
		Use:   "serve <file.parquet|pattern>",
		Short: "Serve the records over HTTP",
		Long: `Serve the records over HTTP until interrupted.

GET /records takes the filter, sort, page and pageSize query parameters and
answers with the page of matching records and their total. GET /properties
describes what may be filtered and sorted. Rejected queries get a 400 with
the reason and hints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadDataset(rootOpts, args[0], entity, caps.overrides())
			if err != nil {
				return err
			}
			if addr == "" {
				addr = rootOpts.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(data.records, data.policy, rootOpts.cfg.Server.CORSOrigins, rootOpts.log)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&entity, "entity", "", "entity name in the config (default the file name)")
	caps.register(cmd)

	return cmd
}
