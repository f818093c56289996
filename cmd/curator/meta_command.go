package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/entity"
	"curator/internal/repack"
)

func newMetaCommand(ctx *commandContext) *cobra.Command {
	var (
		nameFlag        string
		authorFlag      string
		descriptionFlag string
		licenseFlag     string
		copyrightFlag   string
		tagsFlag        []string
		rootFlag        string
	)

	cmd := &cobra.Command{
		Use:   "meta <container> <kind> <asset>",
		Short: "Edit the metadata of one asset inside a container",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entity.ParseKind(args[1])
			if err != nil {
				return err
			}
			root, err := ctx.libraryRoot(rootFlag)
			if err != nil {
				return err
			}

			edit := repack.MetadataEdit{Tags: tagsFlag}
			flags := cmd.Flags()
			if flags.Changed("rename") {
				edit.Name = &nameFlag
			}
			if flags.Changed("author") {
				edit.Author = &authorFlag
			}
			if flags.Changed("description") {
				edit.Description = &descriptionFlag
			}
			if flags.Changed("license") {
				edit.License = &licenseFlag
			}
			if flags.Changed("copyright") {
				edit.Copyright = &copyrightFlag
			}
			if edit.Name == nil && edit.Author == nil && edit.Description == nil &&
				edit.License == nil && edit.Copyright == nil && !flags.Changed("tags") {
				return fmt.Errorf("nothing to change; pass at least one metadata flag")
			}
			if !flags.Changed("tags") {
				edit.Tags = nil
			}

			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			ref := entity.Ref{Kind: kind, Name: args[2]}
			err = ctx.withLibraryLock(root, func() error {
				return engine.UpdateMetadata(cmd.Context(), args[0], ref, edit)
			})
			if err != nil {
				return err
			}
			ctx.invalidateIndex(cmd, []repack.Target{{Path: args[0]}})
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %q in %s\n", kind, args[2], args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "rename", "", "New asset name")
	cmd.Flags().StringVar(&authorFlag, "author", "", "Author")
	cmd.Flags().StringVar(&descriptionFlag, "description", "", "Description")
	cmd.Flags().StringVar(&licenseFlag, "license", "", "License")
	cmd.Flags().StringVar(&copyrightFlag, "copyright", "", "Copyright")
	cmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Replacement tag list")
	cmd.Flags().StringVar(&rootFlag, "root", "", "Library root (defaults to the configured library)")

	return cmd
}
