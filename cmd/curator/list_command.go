package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"curator/internal/catalog"
	"curator/internal/index"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		findFlag    string
		catalogFlag string
		refreshFlag bool
		rootFlag    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed assets in the library",
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

			if refreshFlag {
				if _, err := store.Refresh(cmd.Context(), root); err != nil {
					return err
				}
			}

			defs, err := catalog.NewCache(root, ctx.ensureLogger()).Definitions()
			if err != nil {
				return err
			}

			var records []index.Record
			switch {
			case findFlag != "":
				records, err = store.Search(cmd.Context(), findFlag)
			case catalogFlag != "":
				var id uuid.UUID
				id, err = resolveCatalogFlag(defs, catalogFlag)
				if err == nil {
					records, err = store.ByCatalog(cmd.Context(), id)
				}
			default:
				records, err = store.All(cmd.Context())
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				catalogPath := ""
				if record.CatalogID != uuid.Nil {
					if path, ok := defs.PathForID(record.CatalogID); ok {
						catalogPath = path
					} else {
						catalogPath = record.CatalogID.String()
					}
				}
				rows = append(rows, []string{
					record.Name,
					string(record.Kind),
					catalogPath,
					strings.Join(record.Tags, ", "),
					record.Container,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Kind", "Catalog", "Tags", "Container"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d asset(s)\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&findFlag, "find", "", "Filter by name or tag substring")
	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Filter by catalog (UUID or catalog path)")
	cmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Rescan the library before listing")
	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")

	return cmd
}
