package ports

import (
	"context"
	"time"

	"SustainabilityScanner/internal/domain"
)

// SourceBatch groups raw candidates scraped from one source.
type SourceBatch struct {
	Source     domain.SourceDescriptor
	Candidates []domain.RawCandidate
}

// CandidateSource pulls raw candidates from upstream news sites.
type CandidateSource interface {
	FetchCandidates(ctx context.Context) ([]SourceBatch, error)
}

// ArticleStore persists the article history document.
type ArticleStore interface {
	Load(ctx context.Context) (domain.Database, error)
	Save(ctx context.Context, db domain.Database) error
}

// BatchSink receives the ranked batch of the latest run.
type BatchSink interface {
	PublishBatch(ctx context.Context, articles []domain.Article) error
}

// Notifier streams selected digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// LanguageGate decides whether text is in a supported language.
type LanguageGate interface {
	Accept(text string) bool
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
