package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the state blob as a single row in a key-value table,
// keyed by StateKey. The table is created by embedded migrations.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteStore(dbPath string, logger *log.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.WithComponent(log.ComponentStore),
	}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) *core.AppState {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE key = ?`, StateKey).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Failed to read state row, starting empty",
				log.FieldError, err)
		}
		return core.NewAppState()
	}

	var state core.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		s.logger.WarnContext(ctx, "Corrupt state row, starting empty",
			log.FieldError, err)
		return core.NewAppState()
	}
	return normalize(&state)
}

func (s *SQLiteStore) Save(ctx context.Context, state *core.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		StateKey, payload)
	if err != nil {
		return fmt.Errorf("upsert state row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
