package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"SustainabilityScanner/internal/aggregate"
	"SustainabilityScanner/internal/assembler"
	"SustainabilityScanner/internal/classifier"
	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/metrics"
	"SustainabilityScanner/internal/ports"
	"SustainabilityScanner/internal/rating"
)

const (
	defaultWorkers = 4
	digestItems    = 10

	reasonNoClassification = "no_classification"
	reasonLanguage         = "unsupported_language"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source      ports.CandidateSource
	Store       ports.ArticleStore
	Sink        ports.BatchSink
	Notifier    ports.Notifier
	Gate        ports.LanguageGate
	Classifier  *classifier.Classifier
	Synthesizer *rating.Synthesizer
	Assembler   *assembler.Assembler
	Aggregation aggregate.Options
	Workers     int
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	Clock       func() time.Time
	NewRunID    func() string
}

// Pipeline implements the scan, classify and aggregate workflow.
type Pipeline struct {
	source      ports.CandidateSource
	store       ports.ArticleStore
	sink        ports.BatchSink
	notifier    ports.Notifier
	gate        ports.LanguageGate
	classifier  *classifier.Classifier
	synthesizer *rating.Synthesizer
	assembler   *assembler.Assembler
	cleaner     *assembler.Cleaner
	aggregation aggregate.Options
	workers     int
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
	newRunID    func() string
}

// Evaluation is the scoring of a single text without assembly.
type Evaluation struct {
	Classification domain.ClassificationResult `json:"classification"`
	Rating         domain.RatingVector         `json:"e2sgRating"`
	ImpactScore    int                         `json:"impactScore"`
}

// Rejections counts dropped candidates by reason.
type Rejections map[string]int

// Total sums all reasons.
func (r Rejections) Total() int {
	var n int
	for _, v := range r {
		n += v
	}
	return n
}

// RunReport describes one completed scan run.
type RunReport struct {
	RunID      string
	Fetched    int
	Rejections Rejections
	Published  []domain.Article
	Stored     int
	Drops      aggregate.Drops
	Summary    aggregate.Summary
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:      deps.Source,
		store:       deps.Store,
		sink:        deps.Sink,
		notifier:    deps.Notifier,
		gate:        deps.Gate,
		classifier:  deps.Classifier,
		synthesizer: deps.Synthesizer,
		assembler:   deps.Assembler,
		cleaner:     assembler.NewCleaner(),
		aggregation: deps.Aggregation,
		workers:     deps.Workers,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		now:         deps.Clock,
		newRunID:    deps.NewRunID,
	}

	if p.classifier == nil {
		p.classifier = classifier.New(nil, classifier.DefaultOptions())
	}
	if p.synthesizer == nil {
		p.synthesizer = rating.NewSynthesizer(nil)
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.assembler == nil {
		p.assembler = assembler.New(nil, assembler.DefaultOptions()).WithClock(p.now)
	}
	if p.workers <= 0 {
		p.workers = defaultWorkers
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.newRunID == nil {
		p.newRunID = func() string { return uuid.NewString() }
	}
	return p
}

// Evaluate classifies and rates a single text. ok is false when the text is
// too weak to classify.
func (p *Pipeline) Evaluate(text string) (Evaluation, bool) {
	res, ok := p.classifier.Classify(p.cleaner.Text(text))
	if !ok {
		return Evaluation{}, false
	}
	return Evaluation{
		Classification: res,
		Rating:         p.synthesizer.Rate(res),
		ImpactScore:    rating.Impact(res),
	}, true
}

// ClassifyAndAssemble runs classify, rate and assemble for every candidate on
// the bounded worker pool. The result keeps the candidate order; rejected
// candidates are omitted.
func (p *Pipeline) ClassifyAndAssemble(ctx context.Context, candidates []domain.RawCandidate, source domain.SourceDescriptor) ([]domain.Article, error) {
	articles, _, err := p.classifyBatch(ctx, candidates, source)
	return articles, err
}

type slot struct {
	article domain.Article
	reason  string
}

func (p *Pipeline) classifyBatch(ctx context.Context, candidates []domain.RawCandidate, source domain.SourceDescriptor) ([]domain.Article, Rejections, error) {
	slots := make([]slot, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = p.process(c, source, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("classify batch %s: %w", source.Name, err)
	}

	articles := make([]domain.Article, 0, len(slots))
	rejections := Rejections{}
	for _, s := range slots {
		if s.reason != "" {
			rejections[s.reason]++
			p.metrics.RecordRejection(s.reason)
			continue
		}
		articles = append(articles, s.article)
	}
	return articles, rejections, nil
}

func (p *Pipeline) process(c domain.RawCandidate, source domain.SourceDescriptor, index int) slot {
	if c.SourceName == "" {
		c.SourceName = source.Name
	}
	if c.BaseURL == "" {
		c.BaseURL = source.BaseURL
	}

	text := p.cleaner.Text(c.Text())
	if p.gate != nil && !p.gate.Accept(text) {
		return slot{reason: reasonLanguage}
	}

	res, ok := p.classifier.Classify(text)
	if !ok {
		return slot{reason: reasonNoClassification}
	}

	article, err := p.assembler.Assemble(assembler.Input{
		Candidate:      c,
		Classification: res,
		Rating:         p.synthesizer.Rate(res),
		Impact:         rating.Impact(res),
		Index:          index,
	})
	if err != nil {
		return slot{reason: domain.RejectionReason(err)}
	}
	return slot{article: article}
}

// Run fetches every source, classifies the candidates, aggregates them with
// the stored history and publishes the result. When the store cannot be read
// the batch is still published but the history is left untouched and the
// returned error wraps domain.ErrStoreUnavailable.
func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	start := p.now()
	report := RunReport{RunID: p.newRunID(), Rejections: Rejections{}}
	log := p.logger.With("run_id", report.RunID)

	if p.source == nil {
		return report, errors.New("candidate source is not configured")
	}

	batches, err := p.source.FetchCandidates(ctx)
	if err != nil {
		p.metrics.RecordError("fetch")
		return report, fmt.Errorf("fetch candidates: %w", err)
	}

	var fresh []domain.Article
	for _, batch := range batches {
		report.Fetched += len(batch.Candidates)
		p.metrics.RecordCandidates(batch.Source.Name, len(batch.Candidates))

		articles, rejected, err := p.classifyBatch(ctx, batch.Candidates, batch.Source)
		if err != nil {
			return report, err
		}
		for reason, n := range rejected {
			report.Rejections[reason] += n
		}
		log.Debug("source classified",
			"source", batch.Source.Name,
			"candidates", len(batch.Candidates),
			"accepted", len(articles),
			"rejected", rejected.Total())
		fresh = append(fresh, articles...)
	}

	var storeErr error
	var history domain.Database
	if p.store != nil {
		history, err = p.store.Load(ctx)
		if err != nil {
			p.metrics.RecordError("store_load")
			storeErr = fmt.Errorf("load history: %w", err)
			log.Warn("history unavailable, aggregating without it", "error", err)
			history = domain.Database{}
		}
	}

	outcome := aggregate.Aggregate(fresh, history.Articles, p.aggregation)
	report.Published = outcome.Published
	report.Drops = outcome.Drops
	report.Stored = len(outcome.Stored)
	p.metrics.RecordDrops("low_confidence", outcome.Drops.LowConfidence)
	p.metrics.RecordDrops("duplicate", outcome.Drops.Duplicate)
	p.metrics.RecordDrops("truncated", outcome.Drops.Truncated)
	p.metrics.RecordDrops("evicted", outcome.Drops.Evicted)
	for _, a := range outcome.Published {
		p.metrics.RecordPublished(string(a.Pillar))
	}

	if p.store != nil && storeErr == nil {
		db := aggregate.BuildDatabase(outcome.Stored, len(outcome.Published), report.RunID, p.now().UTC())
		if err := p.store.Save(ctx, db); err != nil {
			p.metrics.RecordError("store_save")
			storeErr = fmt.Errorf("save history: %w", err)
		}
	}
	if storeErr != nil {
		report.Stored = len(history.Articles)
	}

	var sinkErr error
	if p.sink != nil {
		if err := p.sink.PublishBatch(ctx, outcome.Published); err != nil {
			p.metrics.RecordError("snapshot")
			sinkErr = fmt.Errorf("publish batch: %w", err)
		}
	}

	if p.notifier != nil && len(outcome.Published) > 0 {
		if err := p.notifier.PublishDigest(ctx, buildDigestMessage(outcome.Published)); err != nil {
			p.metrics.RecordError("notify")
			log.Warn("digest not delivered", "error", err)
		}
	}

	report.Summary = aggregate.Summarize(outcome.Published)
	p.metrics.RecordRun(p.now().Sub(start).Seconds(), report.Stored)

	log.Info("scan run finished",
		"fetched", report.Fetched,
		"rejected", report.Rejections.Total(),
		"published", len(report.Published),
		"stored", report.Stored,
		"duplicates", outcome.Drops.Duplicate,
		"evicted", outcome.Drops.Evicted,
		"pillars", report.Summary.Pillars,
		"avg_overall", report.Summary.AverageRating.Overall,
		"avg_confidence", report.Summary.AverageConfidence,
		"top_sdgs", formatTopSDGs(report.Summary.TopSDGs))

	return report, errors.Join(storeErr, sinkErr)
}

func buildDigestMessage(articles []domain.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sustainability digest: %d new articles\n\n", len(articles))
	for i, a := range articles {
		if i == digestItems {
			fmt.Fprintf(&b, "...and %d more\n", len(articles)-digestItems)
			break
		}
		fmt.Fprintf(&b, "- %s\nPillar: %s | Impact: %d/10 | SDGs: %s\n%s\n\n",
			a.Title,
			a.Pillar,
			a.ImpactScore,
			joinInts(a.SDGIDs()),
			a.SourceURL)
	}
	return b.String()
}

func formatTopSDGs(counts []aggregate.SDGCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d:%d", c.ID, c.Count)
	}
	return strings.Join(parts, ",")
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
