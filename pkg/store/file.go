package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/mindtower/pkg/errors"
	"github.com/matzehuels/mindtower/pkg/graph"
)

// FileRepository stores each mind map as a JSON document named <id>.json.
type FileRepository struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileRepository creates a file-based repository rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/mindtower/mindmaps/.
func NewFileRepository(baseDir string) (*FileRepository, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "mindtower", "mindmaps")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create mind map dir: %w", err)
	}
	return &FileRepository{baseDir: baseDir, now: time.Now}, nil
}

// Path returns the directory holding the documents.
func (r *FileRepository) Path() string { return r.baseDir }

func (r *FileRepository) docPath(id string) string {
	return filepath.Join(r.baseDir, id+".json")
}

func (r *FileRepository) Get(_ context.Context, id string) (*graph.MindMap, error) {
	if err := errors.ValidateID("mind map id", id); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.read(r.docPath(id), id)
}

func (r *FileRepository) read(path, id string) (*graph.MindMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read mind map file: %w", err)
	}
	var m graph.MindMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse mind map %s", id)
	}
	return &m, nil
}

func (r *FileRepository) Put(_ context.Context, m *graph.MindMap) error {
	if m == nil {
		return Prepare(m, r.now())
	}
	if err := errors.ValidateID("mind map id", m.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.CreatedAt.IsZero() {
		if old, err := r.read(r.docPath(m.ID), m.ID); err == nil {
			m.CreatedAt = old.CreatedAt
		}
	}
	if err := Prepare(m, r.now()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mind map: %w", err)
	}
	if err := os.WriteFile(r.docPath(m.ID), data, 0o644); err != nil {
		return fmt.Errorf("write mind map file: %w", err)
	}
	return nil
}

func (r *FileRepository) List(_ context.Context, userID string, limit int) ([]*graph.MindMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read mind map dir: %w", err)
	}
	var out []*graph.MindMap
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		m, err := r.read(filepath.Join(r.baseDir, entry.Name()), entry.Name())
		if err != nil {
			continue
		}
		if userID == "" || m.UserID == userID {
			out = append(out, m)
		}
	}
	return newest(out, limit), nil
}

var _ Repository = (*FileRepository)(nil)
