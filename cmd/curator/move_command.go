package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/catalog"
	"curator/internal/library"
	"curator/internal/repack"
)

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var (
		catalogFlag string
		namesFlag   []string
		rootFlag    string
		policyFlag  string
	)

	cmd := &cobra.Command{
		Use:   "move <container>...",
		Short: "Move assets to their catalog's place in the library",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(namesFlag) > 0 && len(args) > 1 {
				return fmt.Errorf("--name targets assets within one container; pass a single path")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}
			policy, err := library.ParseCollisionPolicy(policyFlag)
			if err != nil {
				return err
			}
			defs, err := catalog.NewCache(root, ctx.ensureLogger()).Definitions()
			if err != nil {
				return err
			}
			catalogID, err := resolveCatalogFlag(defs, catalogFlag)
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
			opts := repack.MoveOptions{
				LibraryRoot:          root,
				Defs:                 defs,
				CatalogID:            catalogID,
				UseCatalogSubfolders: cfg.Library.UseCatalogSubfolders,
				Policy:               policy,
				Progress:             progressPrinter(cmd, "moving"),
			}

			var summary repack.Summary
			err = ctx.withLibraryLock(root, func() error {
				summary = engine.Move(cmd.Context(), targets, opts)
				return nil
			})
			if err != nil {
				return err
			}
			ctx.invalidateIndex(cmd, targets)
			return reportSummary(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Destination catalog (UUID or catalog path)")
	cmd.Flags().StringSliceVar(&namesFlag, "name", nil, "Asset name(s) to move; default is every asset in the container")
	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")
	cmd.Flags().StringVar(&policyFlag, "on-collision", "increment", "Collision policy: increment, overwrite, or skip")

	return cmd
}
