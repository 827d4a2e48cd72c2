package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
)

// FileStore keeps the state as a single JSON document on disk.
type FileStore struct {
	path   string
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{
		path:   path,
		logger: logger.WithComponent(log.ComponentStore),
	}, nil
}

func (f *FileStore) Load(ctx context.Context) *core.AppState {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.WarnContext(ctx, "Failed to read state file, starting empty",
				log.FieldError, err, "path", f.path)
		}
		return core.NewAppState()
	}

	var state core.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		f.logger.WarnContext(ctx, "Corrupt state file, starting empty",
			log.FieldError, err, "path", f.path)
		return core.NewAppState()
	}
	return normalize(&state)
}

// Save writes the state atomically: a temp file in the same directory is
// renamed over the previous document, so a crash mid-write never leaves a
// truncated state behind.
func (f *FileStore) Save(ctx context.Context, state *core.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".appstate-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
