package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"SustainabilityScanner/internal/domain"
	"SustainabilityScanner/internal/ports"
)

// JSONStore keeps the history document in a single JSON file.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

var _ ports.ArticleStore = (*JSONStore)(nil)

// NewJSONStore binds the store to path. The file is created on first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the document. A missing file yields an empty history.
func (s *JSONStore) Load(ctx context.Context) (domain.Database, error) {
	if err := ctx.Err(); err != nil {
		return domain.Database{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Database{Articles: []domain.Article{}}, nil
	}
	if err != nil {
		return domain.Database{}, fmt.Errorf("%w: read %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}

	var db domain.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return domain.Database{}, fmt.Errorf("%w: decode %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}
	if db.Articles == nil {
		db.Articles = []domain.Article{}
	}
	return db, nil
}

// Save replaces the document atomically.
func (s *JSONStore) Save(ctx context.Context, db domain.Database) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSONAtomic(s.path, db); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// SnapshotWriter writes the latest published batch as a JSON array.
type SnapshotWriter struct {
	mu   sync.Mutex
	path string
}

var _ ports.BatchSink = (*SnapshotWriter)(nil)

// NewSnapshotWriter binds the writer to path.
func NewSnapshotWriter(path string) *SnapshotWriter {
	return &SnapshotWriter{path: path}
}

// PublishBatch overwrites the snapshot with articles.
func (w *SnapshotWriter) PublishBatch(ctx context.Context, articles []domain.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if articles == nil {
		articles = []domain.Article{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return writeJSONAtomic(w.path, articles)
}

func writeJSONAtomic(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
