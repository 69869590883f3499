package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/app"
	"SustainabilityScanner/internal/usecase"
)

func (c *cli) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a single scan and update the history",
		Args:  cobra.NoArgs,
		RunE:  c.runScan,
	}
	cmd.Flags().Bool("json", false, "print the published batch as JSON")
	return cmd
}

func (c *cli) runScan(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer application.Close()

	report, runErr := application.Run(ctx)

	// the root command runs a scan too but has no --json flag
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := writeJSON(cmd.OutOrStdout(), report.Published); err != nil {
			return err
		}
	} else {
		printReport(cmd, report)
	}
	return runErr
}

func printReport(cmd *cobra.Command, report usecase.RunReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", report.RunID)
	fmt.Fprintf(out, "  fetched:   %d\n", report.Fetched)
	fmt.Fprintf(out, "  rejected:  %d\n", report.Rejections.Total())
	fmt.Fprintf(out, "  published: %d\n", len(report.Published))
	fmt.Fprintf(out, "  stored:    %d\n", report.Stored)

	if len(report.Rejections) > 0 {
		reasons := make([]string, 0, len(report.Rejections))
		for reason := range report.Rejections {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(out, "    %-22s %d\n", reason, report.Rejections[reason])
		}
	}

	if report.Summary.Total == 0 {
		return
	}
	r := report.Summary.AverageRating
	fmt.Fprintf(out, "  E2SG avg:  env %.1f, econ %.1f, social %.1f, gov %.1f, overall %.1f\n",
		r.Environmental, r.Economic, r.Social, r.Governance, r.Overall)
	for _, s := range report.Summary.TopSDGs {
		fmt.Fprintf(out, "  SDG %-2d     %d articles\n", s.ID, s.Count)
	}
}
