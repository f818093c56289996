package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}
			if err := config.WriteSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				[][]string{
					{"library.root", cfg.Library.Root},
					{"library.use_catalog_subfolders", yesNo(cfg.Library.UseCatalogSubfolders)},
					{"library.trash_dir", cfg.Library.TrashDir},
					{"naming.prefix", cfg.Naming.Prefix},
					{"naming.suffix", cfg.Naming.Suffix},
					{"naming.include_date", yesNo(cfg.Naming.IncludeDate)},
					{"naming.max_length", fmt.Sprintf("%d", cfg.Naming.MaxLength)},
					{"bundle.max_size_mib", fmt.Sprintf("%d", cfg.Bundle.MaxSizeMiB)},
					{"bundle.warn_size_mib", fmt.Sprintf("%d", cfg.Bundle.WarnSizeMiB)},
					{"bundle.copy_catalog", yesNo(cfg.Bundle.CopyCatalog)},
					{"index.enabled", yesNo(cfg.Index.Enabled)},
					{"index.dir", cfg.Index.Dir},
					{"logging.format", cfg.Logging.Format},
					{"logging.level", cfg.Logging.Level},
					{"logging.dir", cfg.Logging.Dir},
				},
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
