package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"curator/internal/catalog"
	"curator/internal/index"
	"curator/internal/repack"
)

// resolveCatalogFlag accepts either a raw catalog UUID or a catalog path
// from the library's definition file. Empty means unassigned.
func resolveCatalogFlag(defs *catalog.Definitions, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, nil
	}
	if id, err := uuid.Parse(value); err == nil {
		return id, nil
	}
	if defs != nil {
		if id, ok := defs.IDForPath(value); ok {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("unknown catalog %q (not a UUID or a known catalog path)", value)
}

// progressPrinter returns a coarse per-container progress callback when the
// command runs on a terminal, nil otherwise.
func progressPrinter(cmd *cobra.Command, verb string) func(done, total int) {
	out := cmd.OutOrStdout()
	if !isInteractive(out) {
		return nil
	}
	return func(done, total int) {
		fmt.Fprintf(out, "\r%s %d/%d", verb, done, total)
		if done == total {
			fmt.Fprintln(out)
		}
	}
}

// invalidateIndex drops stale index rows for the touched containers. Best
// effort: an unavailable index never fails the command.
func (c *commandContext) invalidateIndex(cmd *cobra.Command, targets []repack.Target) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.Index.Enabled {
		return
	}
	store, err := index.Open(cfg, c.ensureLogger())
	if err != nil {
		return
	}
	defer store.Close()
	for _, target := range targets {
		_ = store.InvalidateContainer(cmd.Context(), target.Path)
	}
}

func reportSummary(cmd *cobra.Command, summary repack.Summary) error {
	fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	for _, problem := range summary.Problems {
		fmt.Fprintf(cmd.OutOrStdout(), "  problem: %s\n", problem)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d container(s) failed; see the log for details", summary.Failed)
	}
	return nil
}
