package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SustainabilityScanner/internal/config"
	"SustainabilityScanner/internal/domain"
)

const sustainabilityFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Sustainability desk</title>
  <link>https://news.example.org</link>
  <description>Sustainability coverage</description>
  <item>
    <title>Solar power and wind energy lift renewable energy output</title>
    <link>https://news.example.org/renewables</link>
    <description>Clean energy projects cut carbon emissions as climate action spreads across Europe this year.</description>
    <pubDate>Fri, 07 Nov 2025 08:30:00 +0000</pubDate>
  </item>
  <item>
    <title>Green bonds fund sustainable finance for water access</title>
    <link>https://news.example.org/green-bonds</link>
    <description>Impact investing and green finance bring clean water and sanitation to rural communities in Africa.</description>
    <pubDate>Thu, 06 Nov 2025 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Local football club wins the cup final</title>
    <link>https://news.example.org/football</link>
    <description>The match ended two goals to one after extra time in front of a full stadium.</description>
  </item>
</channel>
</rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sustainabilityFeed))
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T, feedURL, driver string) config.Config {
	t.Helper()
	dir := t.TempDir()

	storePath := filepath.Join(dir, "news-database.json")
	if driver == config.StoreDriverSQLite {
		storePath = filepath.Join(dir, "news.db")
	}

	raw := fmt.Sprintf(`
logging:
  level: error
fetch:
  hostInterval: 1ms
  maxRetries: 1
store:
  driver: %s
  path: %s
  snapshotPath: %s
sites:
  - name: Sustainability Desk
    scanner: rss
    baseUrl: https://news.example.org
    category: environmental
    categories:
      - name: feed
        url: %s/feed
`, driver, storePath, filepath.Join(dir, "scrapedNews.json"), feedURL)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	return config.Load(path)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestApplicationRunPersistsAndSnapshots(t *testing.T) {
	server := feedServer(t)
	cfg := testConfig(t, server.URL, config.StoreDriverJSON)

	application, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	report, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fetched)
	require.Len(t, report.Published, 2)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, 1, report.Rejections.Total())

	pillars := map[string]domain.Pillar{}
	for _, a := range report.Published {
		pillars[a.SourceURL] = a.Pillar
	}
	assert.Equal(t, domain.PillarEnvironmental, pillars["https://news.example.org/renewables"])
	assert.Equal(t, domain.PillarEconomic, pillars["https://news.example.org/green-bonds"])

	raw, err := os.ReadFile(cfg.Store.SnapshotPath)
	require.NoError(t, err)
	var snapshot []domain.Article
	require.NoError(t, json.Unmarshal(raw, &snapshot))
	assert.Len(t, snapshot, 2)

	db, err := application.Store().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, db.Articles, 2)
	assert.Equal(t, 2, db.Metadata.NewArticlesAdded)
	assert.Equal(t, report.RunID, db.Metadata.RunID)

	second, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second.Published)
	assert.Equal(t, 2, second.Stored)
	assert.Equal(t, 2, second.Drops.Duplicate)
}

func TestApplicationSQLiteStore(t *testing.T) {
	server := feedServer(t)
	cfg := testConfig(t, server.URL, config.StoreDriverSQLite)

	application, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)

	_, err = application.Run(context.Background())
	require.NoError(t, err)

	db, err := application.Store().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, db.Articles, 2)
	require.NoError(t, application.Close())
}

func TestApplicationRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1", config.StoreDriverJSON)
	cfg.Store.Driver = "postgres"

	_, err := New(context.Background(), cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
}

func TestApplicationScheduleStopsWithContext(t *testing.T) {
	server := feedServer(t)
	cfg := testConfig(t, server.URL, config.StoreDriverJSON)
	cfg.Metrics.Address = "127.0.0.1:0"

	application, err := New(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Schedule(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(cfg.Store.Path)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("schedule did not stop")
	}
}

func TestClassifierOptionsConvertsPillarKeys(t *testing.T) {
	t.Parallel()

	opts := classifierOptions(config.ClassifierConfig{
		MinWords:     5,
		FallbackSDGs: map[string][]int{"social": {1, 3}},
	})
	assert.Equal(t, 5, opts.MinWords)
	assert.Equal(t, []int{1, 3}, opts.FallbackSDGs[domain.PillarSocial])
	assert.Nil(t, classifierOptions(config.ClassifierConfig{}).FallbackSDGs)
}

func TestNewEvaluatorScoresText(t *testing.T) {
	t.Parallel()

	cfg := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	eval, ok := NewEvaluator(cfg, discardLogger()).Evaluate(
		"Solar power and wind energy lift renewable energy output as clean energy projects cut carbon emissions")
	require.True(t, ok)
	assert.Equal(t, domain.PillarEnvironmental, eval.Classification.DominantPillar)
	assert.Contains(t, eval.Classification.RankedSDGs, 7)
	assert.Positive(t, eval.ImpactScore)
}
