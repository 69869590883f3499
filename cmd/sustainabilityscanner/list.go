package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"SustainabilityScanner/internal/app"
	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/query"
)

func (c *cli) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored articles",
		Long: `Lists articles from the history store. Filters combine: an article must
match every filter that is set.`,
		Example: `  sustainabilityscanner list --pillar environmental --sdg 13 --sdg 7
  sustainabilityscanner list --search "green bonds" --from 2025-01-01 --json
  sustainabilityscanner list --impact high --sort impact --limit 5`,
		Args: cobra.NoArgs,
		RunE: c.runList,
	}

	cmd.Flags().String("pillar", "", "environmental, social or economic")
	cmd.Flags().IntSlice("sdg", nil, "SDG id; repeat to match any of several")
	cmd.Flags().String("search", "", "case-insensitive text in title, summary, author or tags")
	cmd.Flags().String("from", "", "earliest publish date")
	cmd.Flags().String("to", "", "latest publish date")
	cmd.Flags().String("impact", "", "high (8-10), medium (6-7) or low (1-5)")
	cmd.Flags().String("region", "", "region name; Global matches all")
	cmd.Flags().String("sort", string(query.SortByDate), "date or impact")
	cmd.Flags().Int("limit", 20, "maximum number of articles, 0 for all")
	cmd.Flags().Bool("json", false, "output as JSON")
	return cmd
}

func (c *cli) runList(cmd *cobra.Command, _ []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	application, err := app.New(cmd.Context(), c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer application.Close()

	db, err := application.Store().Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	articles := filter.Apply(db.Articles)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), articles)
	}

	out := cmd.OutOrStdout()
	if len(articles) == 0 {
		fmt.Fprintln(out, "No articles found.")
		return nil
	}
	for _, a := range articles {
		fmt.Fprintf(out, "%s  %-13s impact %2d/10  SDG %-9s %s\n",
			a.PublishedAt.Format(time.DateOnly), a.Pillar, a.ImpactScore, joinSDGs(a.SDGIDs()), a.Title)
		fmt.Fprintf(out, "            %s\n", a.SourceURL)
	}
	fmt.Fprintf(out, "\n%d of %d articles\n", len(articles), len(db.Articles))
	return nil
}

func filterFromFlags(cmd *cobra.Command) (query.Filter, error) {
	var f query.Filter
	flags := cmd.Flags()

	pillar, _ := flags.GetString("pillar")
	if pillar != "" {
		f.Pillar = domain.Pillar(strings.ToLower(pillar))
		if !f.Pillar.Valid() {
			return f, fmt.Errorf("unknown pillar %q", pillar)
		}
	}

	f.SDGs, _ = flags.GetIntSlice("sdg")
	for _, id := range f.SDGs {
		if id < 1 || id > 17 {
			return f, fmt.Errorf("sdg %d out of range 1-17", id)
		}
	}

	f.Search, _ = flags.GetString("search")
	f.Region, _ = flags.GetString("region")
	f.Limit, _ = flags.GetInt("limit")

	var err error
	if f.From, err = dateFlag(cmd, "from"); err != nil {
		return f, err
	}
	if f.To, err = dateFlag(cmd, "to"); err != nil {
		return f, err
	}

	impact, _ := flags.GetString("impact")
	if f.Impact, err = query.ParseImpactLevel(impact); err != nil {
		return f, err
	}

	sortOrder, _ := flags.GetString("sort")
	switch query.SortOrder(sortOrder) {
	case query.SortByDate, query.SortByImpact:
		f.Sort = query.SortOrder(sortOrder)
	default:
		return f, fmt.Errorf("unknown sort order %q", sortOrder)
	}
	return f, nil
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

func joinSDGs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
