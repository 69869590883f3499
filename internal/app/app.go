package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SustainabilityScanner/internal/aggregate"
	"SustainabilityScanner/internal/assembler"
	"SustainabilityScanner/internal/classifier"
	"SustainabilityScanner/internal/config"
	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/infrastructure/language"
	"SustainabilityScanner/internal/infrastructure/parser"
	"SustainabilityScanner/internal/infrastructure/scheduler"
	"SustainabilityScanner/internal/infrastructure/storage"
	"SustainabilityScanner/internal/infrastructure/telegram"
	"SustainabilityScanner/internal/keywords"
	"SustainabilityScanner/internal/logging"
	"SustainabilityScanner/internal/metrics"
	"SustainabilityScanner/internal/ports"
	"SustainabilityScanner/internal/rating"
	"SustainabilityScanner/internal/scanner"
	"SustainabilityScanner/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	store    ports.ArticleStore
	registry *prometheus.Registry
	closers  []func() error
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{cfg: cfg, logger: baseLogger, registry: prometheus.NewRegistry()}
	app.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}
	app.store = store

	fetcher := parser.NewFetcher(nil, parser.FetcherOptions{
		Timeout:      cfg.Fetch.Timeout,
		MaxRetries:   cfg.Fetch.MaxRetries,
		HostInterval: cfg.Fetch.HostInterval,
		UserAgent:    cfg.Fetch.UserAgent,
	})

	registry := scanner.NewRegistry()
	registry.Register(parser.NewHTMLScanner(fetcher))
	registry.Register(parser.NewRSSScanner(fetcher))
	baseLogger.Debug("scanners registered", "names", registry.Names(), "sites", len(cfg.Sites))

	source := parser.NewStrategySource(registry, cfg.Sites, cfg.Fetch.MaxPerSource, baseLogger.With("component", "source"))

	tables := keywords.Default()

	deps := usecase.PipelineDeps{
		Source:      source,
		Store:       store,
		Classifier:  classifier.New(tables, classifierOptions(cfg.Classifier)),
		Synthesizer: rating.NewSynthesizer(nil),
		Assembler: assembler.New(tables.Regions, assembler.Options{
			MinTitleLength:   cfg.Assembler.MinTitleLength,
			MaxTitleLength:   cfg.Assembler.MaxTitleLength,
			MaxSummaryLength: cfg.Assembler.MaxSummaryLength,
			MinConfidence:    cfg.Classifier.MinConfidence,
		}),
		Aggregation: aggregate.Options{
			MinConfidence: cfg.Aggregation.MinConfidence,
			TopN:          cfg.Aggregation.TopN,
			HistoryCap:    cfg.Aggregation.HistoryCap,
			TieEpsilon:    cfg.Aggregation.TieEpsilon,
		},
		Workers: cfg.Pipeline.Workers,
		Metrics: metrics.New(app.registry),
		Logger:  baseLogger.With("component", "pipeline"),
	}

	if cfg.Store.SnapshotPath != "" {
		deps.Sink = storage.NewSnapshotWriter(cfg.Store.SnapshotPath)
	}
	if cfg.Language.EnglishOnly {
		deps.Gate = language.NewGate()
	}
	if notifier := telegram.NewNotifier(
		cfg.Notifications.Telegram.BotToken,
		cfg.Notifications.Telegram.ChatID,
		cfg.Notifications.Telegram.APIBase,
	); notifier.Configured() {
		deps.Notifier = notifier
	}

	app.pipeline = usecase.NewPipeline(deps)
	return app, nil
}

func (a *Application) openStore(ctx context.Context) (ports.ArticleStore, error) {
	switch a.cfg.Store.Driver {
	case config.StoreDriverSQLite:
		if err := os.MkdirAll(filepath.Dir(a.cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		store, err := storage.OpenSQLiteStore(ctx, a.cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return storage.NewJSONStore(a.cfg.Store.Path), nil
	}
}

func classifierOptions(cfg config.ClassifierConfig) classifier.Options {
	opts := classifier.Options{
		MinWords:      cfg.MinWords,
		MinConfidence: cfg.MinConfidence,
		MaxSDGs:       cfg.MaxSDGs,
		FallbackCount: cfg.FallbackCount,
	}
	if len(cfg.FallbackSDGs) > 0 {
		opts.FallbackSDGs = make(map[domain.Pillar][]int, len(cfg.FallbackSDGs))
		for pillar, ids := range cfg.FallbackSDGs {
			opts.FallbackSDGs[domain.Pillar(pillar)] = ids
		}
	}
	return opts
}

// NewEvaluator builds a pipeline that only scores text. It has no source,
// store or sinks, so Run must not be called on it.
func NewEvaluator(cfg config.Config, logger *slog.Logger) *usecase.Pipeline {
	return usecase.NewPipeline(usecase.PipelineDeps{
		Classifier:  classifier.New(keywords.Default(), classifierOptions(cfg.Classifier)),
		Synthesizer: rating.NewSynthesizer(nil),
		Logger:      logger,
	})
}

// Pipeline exposes the wired use case.
func (a *Application) Pipeline() *usecase.Pipeline {
	return a.pipeline
}

// Store exposes the history store for read-only commands.
func (a *Application) Store() ports.ArticleStore {
	return a.store
}

// Run performs a single scan.
func (a *Application) Run(ctx context.Context) (usecase.RunReport, error) {
	return a.pipeline.Run(ctx)
}

// Schedule repeats the scan every configured interval until ctx is done. When
// a metrics address is configured the Prometheus endpoint is served meanwhile.
func (a *Application) Schedule(ctx context.Context) error {
	var server *http.Server
	serverErr := make(chan error, 1)
	if addr := a.cfg.Metrics.Address; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.logger.Info("metrics endpoint listening", "address", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval).WithLocation(a.cfg.Scheduler.Location())
	jobs := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started",
		"interval", driver.Interval().String(),
		"timezone", a.cfg.Scheduler.Location().String(),
		"next_run", scheduler.NextRun(time.Now(), driver.Interval(), a.cfg.Scheduler.Location()).Format(time.RFC3339))

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		runErr = fmt.Errorf("metrics server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := jobs.Stop(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("stop scheduler: %w", err))
	}
	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}
	return runErr
}

// Close releases store handles.
func (a *Application) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}
