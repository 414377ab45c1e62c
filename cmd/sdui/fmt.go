package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sdui/pkg/diff"
	"github.com/alexisbeaulieu97/sdui/pkg/sdui"
)

func newFmtCmd() *cobra.Command {
	var write, showDiff bool

	cmd := &cobra.Command{
		Use:   "fmt <scene.json>",
		Short: "Print a scene document in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read scene: %w", err)
			}
			scene, err := sdui.Decode(data)
			if err != nil {
				return err
			}
			out, err := sdui.EncodeIndent(scene, "  ")
			if err != nil {
				return err
			}
			out = append(out, '\n')

			if showDiff {
				_, err = io.WriteString(cmd.OutOrStdout(), diff.Lines(data, out, path, path+" (canonical)"))
				return err
			}
			if !write {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if bytes.Equal(data, out) {
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("write scene: %w", err)
			}
			loggerFromContext(cmd.Context()).Info("formatted", "path", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "Print a diff against the canonical form instead")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")

	return cmd
}
