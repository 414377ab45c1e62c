package main

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	"github.com/alexisbeaulieu97/sdui/internal/tui"
	"github.com/alexisbeaulieu97/sdui/pkg/action"
)

func newViewCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view <scene.json>",
		Short: "Browse a scene document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := tui.NewNotifier()
			var opts app.Options
			opts.OnImageUpdate = notifier.Notify

			svc, err := newService(cmd, root, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			scene, err := svc.ReadScene(ctx, args[0])
			if err != nil {
				return err
			}
			page := svc.Render(ctx, scene)
			m := tui.New(svc, action.Screen{Title: filepath.Base(args[0]), Content: page})

			return tui.Run(ctx, m, notifier)
		},
	}
}
