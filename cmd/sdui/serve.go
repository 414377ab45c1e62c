package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	"github.com/alexisbeaulieu97/sdui/internal/metrics"
	"github.com/alexisbeaulieu97/sdui/internal/server"
	"github.com/alexisbeaulieu97/sdui/pkg/observability"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(cmd, root, app.Options{DenyFileImages: true})
			if err != nil {
				return err
			}
			defer svc.Close()
			if addr == "" {
				addr = svc.Config().Server.Addr
			}

			reg := metrics.New(nil)
			reg.Install()
			defer observability.Reset()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			loggerFromContext(cmd.Context()).Info("serving previews", "addr", addr)
			return server.New(svc, reg).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: configured server.addr)")

	return cmd
}
