package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/catalog"
)

func newCatalogsCommand(ctx *commandContext) *cobra.Command {
	var rootFlag string

	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "List the catalogs defined for a library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}
			defs, err := catalog.ParseDefinitions(root, ctx.ensureLogger())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, defs.Len())
			for _, entry := range defs.Entries() {
				rows = append(rows, []string{entry.Path, entry.DisplayName, entry.ID.String()})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Display name", "UUID"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d catalog(s)\n", defs.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")

	return cmd
}
