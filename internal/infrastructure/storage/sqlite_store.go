package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/ports"
)

const (
	schema = `
CREATE TABLE IF NOT EXISTS articles (
	source_url   TEXT PRIMARY KEY,
	id           TEXT NOT NULL,
	pillar       TEXT NOT NULL,
	published_at INTEGER NOT NULL,
	position     INTEGER NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_position ON articles(position);
CREATE TABLE IF NOT EXISTS store_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

	metaKey = "database"
)

// storedMeta is the non-article part of the document.
type storedMeta struct {
	LastUpdated time.Time       `json:"lastUpdated"`
	Metadata    domain.Metadata `json:"metadata"`
}

// SQLiteStore persists the history in a SQLite file. Each Save replaces the
// whole history inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*SQLiteStore)(nil)

// OpenSQLiteStore opens or creates the database at path and applies the schema.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrStoreUnavailable, path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: configure %s: %w", domain.ErrStoreUnavailable, path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", domain.ErrStoreUnavailable, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the stored history in its persisted order.
func (s *SQLiteStore) Load(ctx context.Context) (domain.Database, error) {
	query, args, err := sq.Select("payload").From("articles").OrderBy("position ASC").ToSql()
	if err != nil {
		return domain.Database{}, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Database{}, fmt.Errorf("%w: query articles: %w", domain.ErrStoreUnavailable, err)
	}

	articles := []domain.Article{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			_ = rows.Close()
			return domain.Database{}, fmt.Errorf("%w: scan article: %w", domain.ErrStoreUnavailable, err)
		}
		var a domain.Article
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			_ = rows.Close()
			return domain.Database{}, fmt.Errorf("%w: decode article: %w", domain.ErrStoreUnavailable, err)
		}
		articles = append(articles, a)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return domain.Database{}, fmt.Errorf("%w: rows iteration: %w", domain.ErrStoreUnavailable, rowsErr)
	}
	if closeErr := rows.Close(); closeErr != nil {
		return domain.Database{}, fmt.Errorf("%w: close rows: %w", domain.ErrStoreUnavailable, closeErr)
	}

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return domain.Database{}, err
	}

	return domain.Database{
		Articles:    articles,
		LastUpdated: meta.LastUpdated,
		Metadata:    meta.Metadata,
	}, nil
}

func (s *SQLiteStore) loadMeta(ctx context.Context) (storedMeta, error) {
	query, args, err := sq.Select("value").From("store_meta").Where(sq.Eq{"key": metaKey}).ToSql()
	if err != nil {
		return storedMeta{}, fmt.Errorf("build meta select: %w", err)
	}

	var raw string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return storedMeta{}, nil
	}
	if err != nil {
		return storedMeta{}, fmt.Errorf("%w: query metadata: %w", domain.ErrStoreUnavailable, err)
	}

	var meta storedMeta
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return storedMeta{}, fmt.Errorf("%w: decode metadata: %w", domain.ErrStoreUnavailable, err)
	}
	return meta, nil
}

// Save replaces the stored history with db.
func (s *SQLiteStore) Save(ctx context.Context, db domain.Database) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStoreUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = execBuilder(ctx, tx, sq.Delete("articles")); err != nil {
		return fmt.Errorf("%w: clear articles: %w", domain.ErrStoreUnavailable, err)
	}

	for i, a := range db.Articles {
		payload, mErr := json.Marshal(a)
		if mErr != nil {
			err = mErr
			return fmt.Errorf("encode article %s: %w", a.ID, err)
		}
		insert := sq.Insert("articles").
			Options("OR IGNORE").
			Columns("source_url", "id", "pillar", "published_at", "position", "payload").
			Values(a.SourceURL, a.ID, string(a.Pillar), a.PublishedAt.UnixMilli(), i, string(payload))
		if err = execBuilder(ctx, tx, insert); err != nil {
			return fmt.Errorf("%w: insert article %s: %w", domain.ErrStoreUnavailable, a.ID, err)
		}
	}

	meta, mErr := json.Marshal(storedMeta{LastUpdated: db.LastUpdated, Metadata: db.Metadata})
	if mErr != nil {
		err = mErr
		return fmt.Errorf("encode metadata: %w", err)
	}
	upsert := sq.Insert("store_meta").
		Columns("key", "value").
		Values(metaKey, string(meta)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err = execBuilder(ctx, tx, upsert); err != nil {
		return fmt.Errorf("%w: upsert metadata: %w", domain.ErrStoreUnavailable, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func execBuilder(ctx context.Context, tx *sql.Tx, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
