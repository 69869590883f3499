package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SustainabilityScanner/internal/domain"
)

var now = time.Date(2025, time.November, 8, 10, 0, 0, 0, time.UTC)

func sampleDatabase() domain.Database {
	return domain.Database{
		Articles: []domain.Article{
			{
				ID:          "guardian-1-0",
				Title:       "Solar boom lifts renewable capacity worldwide",
				SourceURL:   "https://www.theguardian.com/a",
				Source:      "Guardian Environment",
				Pillar:      domain.PillarEnvironmental,
				SDGs:        []domain.SDGRef{{ID: 7, Title: "Affordable and Clean Energy"}},
				Tags:        []string{"environmental", "sustainability", "sdg-7", "news"},
				ImpactScore: 8,
				Rating:      domain.RatingVector{Environmental: 7, Economic: 3, Social: 3, Governance: 6, Overall: 4.8},
				Region:      "Europe",
				Confidence:  0.29,
				PublishedAt: now,
				ScrapedAt:   now,
			},
			{
				ID:          "un-1-1",
				Title:       "Microfinance reaches rural women in Kenya",
				SourceURL:   "https://news.un.org/b",
				Source:      "UN News",
				Pillar:      domain.PillarSocial,
				SDGs:        []domain.SDGRef{{ID: 5}},
				Confidence:  0.12,
				PublishedAt: now.Add(-time.Hour),
				ScrapedAt:   now,
			},
		},
		LastUpdated: now,
		Metadata: domain.Metadata{
			TotalArticles:      2,
			LastScrapingRun:    now,
			NewArticlesAdded:   1,
			RunID:              "run-1",
			Sources:            []string{"Guardian Environment", "UN News"},
			PillarDistribution: map[domain.Pillar]int{domain.PillarEnvironmental: 1, domain.PillarSocial: 1},
			AverageConfidence:  0.205,
			ConfidenceDistribution: domain.ConfidenceDistribution{
				High: 2,
			},
		},
	}
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewJSONStore(filepath.Join(t.TempDir(), "news-database.json"))
	db, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, db.Articles)
	assert.Empty(t, db.Articles)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "news-database.json")
	store := NewJSONStore(path)
	ctx := context.Background()

	want := sampleDatabase()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "articles")
	assert.Contains(t, doc, "lastUpdated")
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, string(raw), `"sourceUrl": "https://www.theguardian.com/a"`)
	assert.Contains(t, string(raw), `"e2sgRating"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files cleaned up")
}

func TestJSONStoreCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "news-database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestSnapshotWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scrapedNews.json")
	w := NewSnapshotWriter(path)
	ctx := context.Background()

	require.NoError(t, w.PublishBatch(ctx, sampleDatabase().Articles))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var articles []domain.Article
	require.NoError(t, json.Unmarshal(raw, &articles))
	assert.Len(t, articles, 2)

	require.NoError(t, w.PublishBatch(ctx, nil))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Articles)
	assert.True(t, empty.LastUpdated.IsZero())

	want := sampleDatabase()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A second save replaces the history instead of appending to it.
	next := sampleDatabase()
	next.Articles = next.Articles[1:]
	next.Metadata.TotalArticles = 1
	require.NoError(t, store.Save(ctx, next))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Articles, 1)
	assert.Equal(t, "https://news.un.org/b", got.Articles[0].SourceURL)
	assert.Equal(t, 1, got.Metadata.TotalArticles)
}

func TestSQLiteStoreKeepsFirstOfDuplicateURLs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := sampleDatabase()
	dup := db.Articles[0]
	dup.Title = "later copy"
	db.Articles = append(db.Articles, dup)

	require.NoError(t, store.Save(ctx, db))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Articles, 2)
	assert.Equal(t, "Solar boom lifts renewable capacity worldwide", got.Articles[0].Title)
}

func TestSQLiteStoreClosedIsUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.ErrorIs(t, store.Save(ctx, sampleDatabase()), domain.ErrStoreUnavailable)
}

const legacyDocument = `{
  "articles": [
    {
      "id": "guardian-environment-1730970000000-0",
      "title": "Solar boom lifts renewable capacity worldwide",
      "summary": "Installations doubled.",
      "content": "Installations doubled.",
      "author": "Guardian Environment",
      "publishedAt": "2024-11-07T08:30:00Z",
      "sourceUrl": "https://www.theguardian.com/a",
      "source": "Guardian Environment",
      "pillar": "environmental",
      "sdgs": [{"id": 7, "title": "Affordable and Clean Energy", "description": "", "color": "#FCC30B", "icon": "zap"}],
      "tags": ["environmental", "sustainability", "sdg-7", "news"],
      "readTime": 1,
      "impactScore": 8,
      "e2sgRating": {"environmental": 7, "economic": 3, "social": 3, "governance": 6, "overall": 4.8},
      "region": "Europe",
      "scrapedAt": "2024-11-07T09:00:00Z",
      "confidence": 0.29,
      "imageUrl": "https://images.pexels.com/photos/356036/pexels-photo-356036.jpeg",
      "isBookmarked": false,
      "viewCount": 0,
      "shareCount": 57
    }
  ],
  "lastUpdated": "2024-11-07T09:00:00Z",
  "metadata": {"totalArticles": 1, "sources": ["Guardian Environment"]}
}`

func TestJSONStoreKeepsLegacyFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "news-database.json")
	require.NoError(t, os.WriteFile(path, []byte(legacyDocument), 0o600))

	store := NewJSONStore(path)
	db, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, db))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Articles []map[string]any `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Articles, 1)

	saved := doc.Articles[0]
	assert.Equal(t, "https://images.pexels.com/photos/356036/pexels-photo-356036.jpeg", saved["imageUrl"])
	assert.Equal(t, false, saved["isBookmarked"])
	assert.Equal(t, float64(0), saved["viewCount"])
	assert.Equal(t, float64(57), saved["shareCount"])
}

func TestSQLiteStoreKeepsLegacyFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var legacy domain.Database
	require.NoError(t, json.Unmarshal([]byte(legacyDocument), &legacy))

	store, err := OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Save(ctx, legacy))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Articles, 1)

	a := got.Articles[0]
	assert.Equal(t, "https://images.pexels.com/photos/356036/pexels-photo-356036.jpeg", a.ImageURL)
	require.NotNil(t, a.ViewCount)
	assert.Equal(t, 0, *a.ViewCount)
	require.NotNil(t, a.ShareCount)
	assert.Equal(t, 57, *a.ShareCount)
	require.NotNil(t, a.IsBookmarked)
	assert.False(t, *a.IsBookmarked)
}
