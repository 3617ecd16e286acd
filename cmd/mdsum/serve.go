package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/distribution/mdhash/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <config>",
		Short: "`serve` runs the HTTP digest service",
		Long:  "`serve` runs the HTTP digest service, configured by the given file, --config or $" + configurationPathEnv + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) > 0 {
				path = args[0]
			}
			config, err := resolveConfiguration(path)
			if err != nil {
				return usageErrorf("configuration error: %v", err)
			}

			srv, err := server.NewServer(dcontext.Background(), config)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
}
