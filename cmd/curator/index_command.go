package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/index"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Asset index utilities",
	}
	indexCmd.AddCommand(newIndexRefreshCommand(ctx))
	return indexCmd
}

func newIndexRefreshCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rescan the library and rebuild the asset index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}
			store, err := index.Open(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}
			defer store.Close()

			indexed, err := store.Refresh(cmd.Context(), root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d asset(s) under %s\n", indexed, root)
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")

	return cmd
}
