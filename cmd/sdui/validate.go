package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/internal/app"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene.json>...",
		Short: "Check scene documents for decode and value errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd, root, app.Options{})
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				scene, err := svc.ReadScene(cmd.Context(), path)
				if err == nil {
					err = sdui.Validate(scene)
				}
				if err != nil {
					failed++
					if at := sduierrors.PathOf(err); at != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid at %s: %v\n", path, at, err)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid: %v\n", path, err)
					}
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}
