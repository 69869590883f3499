package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	configPathEnv     = "SUSTAINABILITY_SCANNER_CONFIG"
	logLevelEnv       = "LOG_LEVEL"
	storeDriverEnv    = "STORE_DRIVER"
	storePathEnv      = "STORE_PATH"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	metricsAddressEnv = "METRICS_ADDRESS"

	// StoreDriverJSON keeps the history in a JSON document.
	StoreDriverJSON = "json"
	// StoreDriverSQLite keeps the history in a SQLite file.
	StoreDriverSQLite = "sqlite"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Classifier    ClassifierConfig   `yaml:"classifier"`
	Assembler     AssemblerConfig    `yaml:"assembler"`
	Aggregation   AggregationConfig  `yaml:"aggregation"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Store         StoreConfig        `yaml:"store"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Language      LanguageConfig     `yaml:"language"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// LoggingConfig selects level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SchedulerConfig defines how often the scan repeats in schedule mode.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// ClassifierConfig holds thresholds of the keyword classifier. FallbackSDGs is
// keyed by pillar name.
type ClassifierConfig struct {
	MinWords      int              `yaml:"minWords"`
	MinConfidence float64          `yaml:"minConfidence"`
	MaxSDGs       int              `yaml:"maxSdgs"`
	FallbackCount int              `yaml:"fallbackCount"`
	FallbackSDGs  map[string][]int `yaml:"fallbackSdgs"`
}

// AssemblerConfig holds article length limits.
type AssemblerConfig struct {
	MinTitleLength   int `yaml:"minTitleLength"`
	MaxTitleLength   int `yaml:"maxTitleLength"`
	MaxSummaryLength int `yaml:"maxSummaryLength"`
}

// AggregationConfig holds ranking and retention limits.
type AggregationConfig struct {
	MinConfidence float64 `yaml:"minConfidence"`
	TopN          int     `yaml:"topN"`
	HistoryCap    int     `yaml:"historyCap"`
	TieEpsilon    float64 `yaml:"tieEpsilon"`
}

// PipelineConfig sizes the classification worker pool.
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// FetchConfig controls HTTP politeness.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"maxRetries"`
	HostInterval time.Duration `yaml:"hostInterval"`
	MaxPerSource int           `yaml:"maxPerSource"`
	UserAgent    string        `yaml:"userAgent"`
}

// StoreConfig selects the history backend and output files.
type StoreConfig struct {
	Driver       string `yaml:"driver"`
	Path         string `yaml:"path"`
	SnapshotPath string `yaml:"snapshotPath"`
}

// MetricsConfig exposes Prometheus metrics in schedule mode when Address is set.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// LanguageConfig toggles the English-only gate.
type LanguageConfig struct {
	EnglishOnly bool `yaml:"englishOnly"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	APIBase  string `yaml:"apiBase"`
}

// SiteConfig describes a single news source with its scanner strategy.
type SiteConfig struct {
	Name       string           `yaml:"name"`
	Scanner    string           `yaml:"scanner"`
	BaseURL    string           `yaml:"baseUrl"`
	Category   string           `yaml:"category"`
	Categories []CategoryConfig `yaml:"categories"`
	Selectors  SelectorConfig   `yaml:"selectors"`
}

// CategoryConfig holds the concrete listing page or feed to crawl.
type CategoryConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SelectorConfig holds site-specific CSS selectors for HTML listings.
type SelectorConfig struct {
	Articles string `yaml:"articles"`
	Title    string `yaml:"title"`
	Link     string `yaml:"link"`
	Summary  string `yaml:"summary"`
	Date     string `yaml:"date"`
	Author   string `yaml:"author"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
// An empty path falls back to $SUSTAINABILITY_SCANNER_CONFIG.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

// Parse decodes a YAML document without applying defaults.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors that would break a run.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreDriverJSON, StoreDriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q must be %s or %s", c.Store.Driver, StoreDriverJSON, StoreDriverSQLite))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}

	for i, site := range c.Sites {
		if site.Name == "" {
			errs = append(errs, fmt.Errorf("sites[%d]: name is required", i))
		}
		if len(site.Categories) == 0 {
			errs = append(errs, fmt.Errorf("site %q: at least one category is required", site.Name))
		}
	}

	for pillar, ids := range c.Classifier.FallbackSDGs {
		switch pillar {
		case "environmental", "social", "economic":
		default:
			errs = append(errs, fmt.Errorf("classifier.fallbackSdgs: unknown pillar %q", pillar))
		}
		if len(ids) == 0 {
			errs = append(errs, fmt.Errorf("classifier.fallbackSdgs.%s: at least one SDG id is required", pillar))
		}
		for _, id := range ids {
			if id < 1 || id > 17 {
				errs = append(errs, fmt.Errorf("classifier.fallbackSdgs.%s: SDG id %d out of range 1-17", pillar, id))
			}
		}
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(storeDriverEnv); v != "" {
		c.Store.Driver = v
	}

	if v := os.Getenv(storePathEnv); v != "" {
		c.Store.Path = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(metricsAddressEnv); v != "" {
		c.Metrics.Address = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Classifier.MinWords > 0 {
		base.Classifier.MinWords = override.Classifier.MinWords
	}
	if override.Classifier.MinConfidence > 0 {
		base.Classifier.MinConfidence = override.Classifier.MinConfidence
	}
	if override.Classifier.MaxSDGs > 0 {
		base.Classifier.MaxSDGs = override.Classifier.MaxSDGs
	}
	if override.Classifier.FallbackCount > 0 {
		base.Classifier.FallbackCount = override.Classifier.FallbackCount
	}
	if len(override.Classifier.FallbackSDGs) > 0 {
		base.Classifier.FallbackSDGs = override.Classifier.FallbackSDGs
	}

	if override.Assembler.MinTitleLength > 0 {
		base.Assembler.MinTitleLength = override.Assembler.MinTitleLength
	}
	if override.Assembler.MaxTitleLength > 0 {
		base.Assembler.MaxTitleLength = override.Assembler.MaxTitleLength
	}
	if override.Assembler.MaxSummaryLength > 0 {
		base.Assembler.MaxSummaryLength = override.Assembler.MaxSummaryLength
	}

	if override.Aggregation.MinConfidence > 0 {
		base.Aggregation.MinConfidence = override.Aggregation.MinConfidence
	}
	if override.Aggregation.TopN > 0 {
		base.Aggregation.TopN = override.Aggregation.TopN
	}
	if override.Aggregation.HistoryCap > 0 {
		base.Aggregation.HistoryCap = override.Aggregation.HistoryCap
	}
	if override.Aggregation.TieEpsilon > 0 {
		base.Aggregation.TieEpsilon = override.Aggregation.TieEpsilon
	}

	if override.Pipeline.Workers > 0 {
		base.Pipeline.Workers = override.Pipeline.Workers
	}

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.MaxRetries > 0 {
		base.Fetch.MaxRetries = override.Fetch.MaxRetries
	}
	if override.Fetch.HostInterval > 0 {
		base.Fetch.HostInterval = override.Fetch.HostInterval
	}
	if override.Fetch.MaxPerSource > 0 {
		base.Fetch.MaxPerSource = override.Fetch.MaxPerSource
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if override.Store.Driver != "" {
		base.Store.Driver = override.Store.Driver
	}
	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}
	if override.Store.SnapshotPath != "" {
		base.Store.SnapshotPath = override.Store.SnapshotPath
	}

	if override.Metrics.Address != "" {
		base.Metrics.Address = override.Metrics.Address
	}

	if override.Language.EnglishOnly {
		base.Language.EnglishOnly = true
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Notifications.Telegram.APIBase != "" {
		base.Notifications.Telegram.APIBase = override.Notifications.Telegram.APIBase
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Scheduler: SchedulerConfig{Interval: 6 * time.Hour, Timezone: defaultTimezone, location: tz},
		Classifier: ClassifierConfig{
			MinWords:      10,
			MinConfidence: 0.02,
			MaxSDGs:       3,
			FallbackCount: 2,
		},
		Assembler: AssemblerConfig{
			MinTitleLength:   15,
			MaxTitleLength:   200,
			MaxSummaryLength: 500,
		},
		Aggregation: AggregationConfig{
			MinConfidence: 0.01,
			TopN:          100,
			HistoryCap:    1000,
			TieEpsilon:    0.01,
		},
		Pipeline: PipelineConfig{Workers: 4},
		Fetch: FetchConfig{
			Timeout:      25 * time.Second,
			MaxRetries:   3,
			HostInterval: 3 * time.Second,
			MaxPerSource: 25,
			UserAgent:    "Mozilla/5.0 (compatible; SustainabilityScanner/1.0)",
		},
		Store: StoreConfig{
			Driver:       StoreDriverJSON,
			Path:         "data/news-database.json",
			SnapshotPath: "data/scrapedNews.json",
		},
		Sites: defaultSites(),
	}
}
