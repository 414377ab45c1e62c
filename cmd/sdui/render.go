package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/sdui/internal/app"
)

const defaultWidth = 80

type renderOptions struct {
	width int
	wait  time.Duration
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Render a scene document to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Render width in cells (default: terminal width or configured width)")
	cmd.Flags().DurationVar(&opts.wait, "wait-images", 0, "Wait up to this long for remote images before printing")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, opts renderOptions, path string) error {
	svc, err := newService(cmd, root, app.Options{})
	if err != nil {
		return err
	}
	defer svc.Close()
	log := loggerFromContext(cmd.Context())

	ctx := cmd.Context()
	scene, err := svc.ReadScene(ctx, path)
	if err != nil {
		return err
	}

	width := opts.width
	if width <= 0 {
		width = svc.Width(terminalWidth(cmd))
	}

	p := newProgress(log)
	out := svc.Draw(ctx, scene, width)
	if opts.wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, opts.wait)
		defer cancel()
		if err := svc.Images.Wait(waitCtx); err != nil {
			log.Warn("images still loading", "err", err)
		}
		out = svc.Draw(ctx, scene, width)
	}
	p.done(fmt.Sprintf("Rendered %s at %d columns", path, width))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// terminalWidth returns the width of stdout when it is a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
