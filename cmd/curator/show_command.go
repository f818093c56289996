package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"curator/internal/container"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <container>",
		Short: "List the entities inside a container file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.List(args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			assets := 0
			for _, entry := range entries {
				catalogID := ""
				if entry.IsAsset {
					assets++
					if entry.CatalogID != uuid.Nil {
						catalogID = entry.CatalogID.String()
					}
				}
				rows = append(rows, []string{
					string(entry.Kind),
					entry.Name,
					yesNo(entry.IsAsset),
					catalogID,
					strings.Join(entry.Tags, ", "),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "Name", "Asset", "Catalog", "Tags"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d entities, %d marked as assets\n", len(entries), assets)
			return nil
		},
	}
	return cmd
}
