package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/config"
	"SustainabilityScanner/internal/logging"
)

// cli carries state resolved by the root command for its subcommands.
type cli struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "sustainabilityscanner",
		Short: "Scrape, classify and rank sustainability news",
		Long: `sustainabilityscanner collects articles from configured news sites,
scores them against the environmental, social and economic pillars and the
17 UN Sustainable Development Goals, and keeps a ranked history.

Without a subcommand a single scan is performed.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE:              c.runScan,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to YAML config (default $SUSTAINABILITY_SCANNER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		c.newScanCmd(),
		c.newScheduleCmd(),
		c.newClassifyCmd(),
		c.newListCmd(),
		c.newProgressCmd(),
	)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	c.cfg = config.Load(c.configPath)
	if c.logLevel != "" {
		c.cfg.Logging.Level = c.logLevel
	}
	c.logger = logging.NewWithFormat(cmd.ErrOrStderr(), c.cfg.Logging.Level, c.cfg.Logging.Format)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
