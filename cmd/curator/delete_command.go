package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/repack"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var (
		namesFlag []string
		rootFlag  string
	)

	cmd := &cobra.Command{
		Use:   "delete <container>...",
		Short: "Remove assets from containers, discarding files left without any",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(namesFlag) > 0 && len(args) > 1 {
				return fmt.Errorf("--name targets assets within one container; pass a single path")
			}
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			targets := make([]repack.Target, 0, len(args))
			for _, path := range args {
				targets = append(targets, repack.Target{Path: path, Names: namesFlag})
			}

			var summary repack.Summary
			err = ctx.withLibraryLock(root, func() error {
				summary = engine.Delete(cmd.Context(), targets)
				return nil
			})
			if err != nil {
				return err
			}
			ctx.invalidateIndex(cmd, targets)
			return reportSummary(cmd, summary)
		},
	}

	cmd.Flags().StringSliceVar(&namesFlag, "name", nil, "Asset name(s) to remove; default is every asset in the container")
	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")

	return cmd
}
