package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/app"
)

func (c *cli) newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Scan immediately and then on every scheduler interval",
		Long: `Runs a scan right away and repeats it every scheduler.interval until
interrupted. When metrics.address is set, Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: c.runSchedule,
	}
}

func (c *cli) runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Schedule(ctx)
}
