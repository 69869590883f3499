package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/app"
	"SustainabilityScanner/internal/query"
)

func (c *cli) newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show per-SDG progress derived from stored articles",
		Args:  cobra.NoArgs,
		RunE:  c.runProgress,
	}
	cmd.Flags().Bool("json", false, "output as JSON")
	return cmd
}

func (c *cli) runProgress(cmd *cobra.Command, _ []string) error {
	application, err := app.New(cmd.Context(), c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer application.Close()

	db, err := application.Store().Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	progress := query.SDGProgress(db.Articles)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), progress)
	}

	out := cmd.OutOrStdout()
	for _, p := range progress {
		fmt.Fprintf(out, "SDG %-2d %-45s %3d%%  %-6s %d articles\n", p.ID, p.Title, p.Progress, p.Trend, p.Articles)
	}
	return nil
}
