package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"SustainabilityScanner/internal/aggregate"
	"SustainabilityScanner/internal/assembler"
	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/ports"
	"SustainabilityScanner/internal/rating"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, time.November, 8, 10, 0, 0, 0, time.UTC)

const strongSummary = "Solar power and renewable energy investment drives sustainable economic growth in green finance"

type fakeSource struct {
	batches []ports.SourceBatch
	err     error
}

func (f *fakeSource) FetchCandidates(context.Context) ([]ports.SourceBatch, error) {
	return f.batches, f.err
}

type memStore struct {
	mu      sync.Mutex
	db      domain.Database
	loadErr error
	saves   int
}

func (m *memStore) Load(context.Context) (domain.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.Database{}, m.loadErr
	}
	return m.db, nil
}

func (m *memStore) Save(_ context.Context, db domain.Database) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.db = db
	return nil
}

type recordingSink struct {
	batches [][]domain.Article
}

func (r *recordingSink) PublishBatch(_ context.Context, articles []domain.Article) error {
	r.batches = append(r.batches, articles)
	return nil
}

type recordingNotifier struct {
	digests []string
}

func (r *recordingNotifier) PublishDigest(_ context.Context, digest string) error {
	r.digests = append(r.digests, digest)
	return nil
}

type rejectAll struct{}

func (rejectAll) Accept(string) bool { return false }

func source() domain.SourceDescriptor {
	return domain.SourceDescriptor{Name: "Guardian Environment", BaseURL: "https://www.theguardian.com", Category: "environment"}
}

func candidates() []domain.RawCandidate {
	return []domain.RawCandidate{
		{Title: "Solar power expansion accelerates renewable energy", Link: "/a", Summary: strongSummary},
		{Title: "Solar news", Link: "/b", Summary: strongSummary},
		{Title: "Football results announced after the weekend", Link: "/c", Summary: "The quarterly football results were announced after the match on Sunday evening"},
		{Title: "Green finance fuels renewable energy investment", Link: "mailto:desk@example.org", Summary: strongSummary},
		{Title: "Renewable energy investment reaches new record", Link: "/e", Summary: strongSummary},
	}
}

func newTestPipeline(deps PipelineDeps) *Pipeline {
	clock := func() time.Time { return fixedNow }
	deps.Clock = clock
	deps.Synthesizer = rating.NewSynthesizer(rating.GovernanceSource(6))
	deps.Assembler = assembler.New(nil, assembler.DefaultOptions()).WithClock(clock)
	deps.NewRunID = func() string { return "run-1" }
	deps.Workers = 3
	return NewPipeline(deps)
}

func TestClassifyAndAssembleKeepsOrderAndCountsRejections(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(PipelineDeps{})
	articles, rejections, err := p.classifyBatch(context.Background(), candidates(), source())
	require.NoError(t, err)

	require.Len(t, articles, 2)
	assert.Equal(t, "https://www.theguardian.com/a", articles[0].SourceURL)
	assert.Equal(t, "https://www.theguardian.com/e", articles[1].SourceURL)
	assert.Equal(t, "guardian-environment-1762596000000-0", articles[0].ID)
	assert.Equal(t, "guardian-environment-1762596000000-4", articles[1].ID)
	assert.Equal(t, "Guardian Environment", articles[0].Source)
	assert.Equal(t, 6, articles[0].Rating.Governance)

	assert.Equal(t, Rejections{
		"short_title":       1,
		"no_classification": 1,
		"invalid_link":      1,
	}, rejections)
	assert.Equal(t, 3, rejections.Total())
}

func TestClassifyAndAssembleHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestPipeline(PipelineDeps{})
	_, err := p.ClassifyAndAssemble(ctx, candidates(), source())
	require.ErrorIs(t, err, context.Canceled)
}

func TestClassifyAndAssembleLanguageGate(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(PipelineDeps{Gate: rejectAll{}})
	articles, rejections, err := p.classifyBatch(context.Background(), candidates(), source())
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Equal(t, 5, rejections[reasonLanguage])
}

func TestClassifyAndAssembleManyCandidates(t *testing.T) {
	t.Parallel()

	var batch []domain.RawCandidate
	for i := 0; i < 200; i++ {
		batch = append(batch, domain.RawCandidate{
			Title:   fmt.Sprintf("Renewable energy investment story number %d", i),
			Link:    fmt.Sprintf("/story/%d", i),
			Summary: strongSummary,
		})
	}

	p := newTestPipeline(PipelineDeps{})
	articles, err := p.ClassifyAndAssemble(context.Background(), batch, source())
	require.NoError(t, err)
	require.Len(t, articles, 200)
	for i, a := range articles {
		assert.Equal(t, fmt.Sprintf("https://www.theguardian.com/story/%d", i), a.SourceURL)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(PipelineDeps{})
	ev, ok := p.Evaluate(strongSummary)
	require.True(t, ok)
	assert.Equal(t, domain.PillarEnvironmental, ev.Classification.DominantPillar)
	assert.Equal(t, 6, ev.Rating.Governance)
	assert.Equal(t, rating.Impact(ev.Classification), ev.ImpactScore)

	_, ok = p.Evaluate("too short")
	assert.False(t, ok)
}

func TestRunMergesWithHistory(t *testing.T) {
	t.Parallel()

	store := &memStore{db: domain.Database{Articles: []domain.Article{{
		ID:          "old",
		Title:       "Stored original",
		SourceURL:   "https://www.theguardian.com/e",
		Source:      "Guardian Environment",
		Pillar:      domain.PillarSocial,
		Confidence:  0.4,
		PublishedAt: fixedNow.Add(-72 * time.Hour),
	}}}}
	sink := &recordingSink{}
	notifier := &recordingNotifier{}

	p := newTestPipeline(PipelineDeps{
		Source:   &fakeSource{batches: []ports.SourceBatch{{Source: source(), Candidates: candidates()}}},
		Store:    store,
		Sink:     sink,
		Notifier: notifier,
	})

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 5, report.Fetched)
	assert.Equal(t, 3, report.Rejections.Total())
	require.Len(t, report.Published, 1)
	assert.Equal(t, "https://www.theguardian.com/a", report.Published[0].SourceURL)
	assert.Equal(t, 1, report.Drops.Duplicate)
	assert.Equal(t, 2, report.Stored)

	assert.Equal(t, 1, store.saves)
	assert.Equal(t, "run-1", store.db.Metadata.RunID)
	assert.Equal(t, 1, store.db.Metadata.NewArticlesAdded)
	assert.Equal(t, 2, store.db.Metadata.TotalArticles)
	assert.Equal(t, "Stored original", store.db.Articles[1].Title)

	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 1)
	require.Len(t, notifier.digests, 1)
	assert.True(t, strings.HasPrefix(notifier.digests[0], "Sustainability digest: 1 new articles"))
	assert.Contains(t, notifier.digests[0], "https://www.theguardian.com/a")
}

func TestRunWithUnavailableStoreStillPublishes(t *testing.T) {
	t.Parallel()

	store := &memStore{loadErr: fmt.Errorf("%w: disk gone", domain.ErrStoreUnavailable)}
	sink := &recordingSink{}
	notifier := &recordingNotifier{}

	p := newTestPipeline(PipelineDeps{
		Source:   &fakeSource{batches: []ports.SourceBatch{{Source: source(), Candidates: candidates()}}},
		Store:    store,
		Sink:     sink,
		Notifier: notifier,
	})

	report, err := p.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Zero(t, store.saves, "history must not be overwritten")
	assert.Len(t, report.Published, 2)
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 2)
	assert.Len(t, notifier.digests, 1)
}

func TestRunEmptyBatchIsValid(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	notifier := &recordingNotifier{}
	p := newTestPipeline(PipelineDeps{
		Source:   &fakeSource{},
		Store:    store,
		Notifier: notifier,
	})

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Published)
	assert.Equal(t, 1, store.saves)
	assert.NotNil(t, store.db.Articles)
	assert.Empty(t, notifier.digests)
}

func TestRunFetchFailure(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	p := newTestPipeline(PipelineDeps{
		Source: &fakeSource{err: errors.New("network down")},
		Store:  store,
	})

	_, err := p.Run(context.Background())
	require.ErrorContains(t, err, "fetch candidates: network down")
	assert.Zero(t, store.saves)
}

func TestBuildDigestMessageCapsItems(t *testing.T) {
	t.Parallel()

	var articles []domain.Article
	for i := 0; i < 12; i++ {
		articles = append(articles, domain.Article{
			Title:       fmt.Sprintf("Story %d", i),
			Pillar:      domain.PillarEconomic,
			ImpactScore: 7,
			SDGs:        []domain.SDGRef{{ID: 8}, {ID: 9}},
			SourceURL:   fmt.Sprintf("https://x/%d", i),
		})
	}

	msg := buildDigestMessage(articles)
	assert.Contains(t, msg, "Pillar: economic | Impact: 7/10 | SDGs: 8, 9")
	assert.Contains(t, msg, "https://x/9")
	assert.NotContains(t, msg, "https://x/10")
	assert.Contains(t, msg, "...and 2 more")
	assert.Empty(t, buildDigestMessage(nil))
}

func TestRunSummaryFeedsReport(t *testing.T) {
	t.Parallel()

	p := newTestPipeline(PipelineDeps{
		Source: &fakeSource{batches: []ports.SourceBatch{{Source: source(), Candidates: candidates()}}},
	})
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, aggregate.Summarize(report.Published), report.Summary)
}
