package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/bundle"
)

func newBundleCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag     string
		nameFlag       string
		rootFlag       string
		duplicatesFlag string
	)

	cmd := &cobra.Command{
		Use:   "bundle <container>...",
		Short: "Merge containers into a single shareable container",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}
			duplicates, err := bundle.ParseDuplicatePolicy(duplicatesFlag)
			if err != nil {
				return err
			}
			output := outputFlag
			if output == "" {
				output = root
			}

			bundler := bundle.New(ctx.ensureLogger())
			result, err := bundler.Bundle(cmd.Context(), bundle.Options{
				Paths:       args,
				OutputDir:   output,
				Name:        nameFlag,
				LibraryRoot: root,
				Duplicates:  duplicates,
				MaxSizeMiB:  cfg.Bundle.MaxSizeMiB,
				WarnSizeMiB: cfg.Bundle.WarnSizeMiB,
				CopyCatalog: cfg.Bundle.CopyCatalog,
				Progress:    progressPrinter(cmd, "bundling"),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bundled %d container(s) into %s (%d entities)\n",
				result.Imported, result.Output, result.Entities)
			if result.CatalogCopy != "" {
				fmt.Fprintf(out, "catalog definitions copied to %s\n", result.CatalogCopy)
			}
			if result.Skipped > 0 {
				fmt.Fprintf(out, "skipped %d source(s)\n", result.Skipped)
			}
			if result.Duplicates > 0 {
				fmt.Fprintf(out, "%d duplicate entities resolved by %s\n", result.Duplicates, duplicates)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d source(s) failed; see the log for details", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (defaults to the library root)")
	cmd.Flags().StringVar(&nameFlag, "bundle-name", "bundle", "Base name for the bundle file")
	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")
	cmd.Flags().StringVar(&duplicatesFlag, "on-duplicate", "skip", "Duplicate entity policy: skip or overwrite")

	return cmd
}
