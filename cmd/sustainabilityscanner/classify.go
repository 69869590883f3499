package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/app"
	"SustainabilityScanner/internal/usecase"
)

type classifyOutput struct {
	Classified bool `json:"classified"`
	*usecase.Evaluation
}

func (c *cli) newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text...]",
		Short: "Score a piece of text without scraping",
		Long: `Classifies the given text (or stdin when no arguments are passed) and prints
the pillar scores, ranked SDGs, E2SG rating and impact score as JSON.`,
		Example: `  sustainabilityscanner classify "Solar power and wind energy expand clean energy access"
  cat article.txt | sustainabilityscanner classify`,
		RunE: c.runClassify,
	}
}

func (c *cli) runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(raw)
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no text to classify")
	}

	out := classifyOutput{}
	if eval, ok := app.NewEvaluator(c.cfg, c.logger).Evaluate(text); ok {
		out = classifyOutput{Classified: true, Evaluation: &eval}
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
