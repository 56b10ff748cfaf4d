package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jwebster45206/case-engine/pkg/world"
)

// SQLiteStorage implements Storage using a local SQLite file for world
// snapshots. Used for console play, where no Redis is available.
type SQLiteStorage struct {
	casefileDir
	db     *sql.DB
	logger *slog.Logger
}

var _ Storage = (*SQLiteStorage)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS world_states (
	id TEXT PRIMARY KEY,
	casefile_name TEXT NOT NULL,
	snapshot TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// NewSQLiteStorage opens (and if necessary initializes) a local save
// database.
func NewSQLiteStorage(path, dataDir string, logger *slog.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &SQLiteStorage{
		casefileDir: casefileDir{dataDir: dataDir, logger: logger},
		db:          db,
		logger:      logger,
	}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close sqlite database", "error", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) SaveWorldState(ctx context.Context, id uuid.UUID, w *world.WorldState) error {
	w.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal world state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO world_states (id, casefile_name, snapshot, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			casefile_name = excluded.casefile_name,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		id.String(), w.CasefileName, string(data), w.UpdatedAt)
	if err != nil {
		s.logger.Error("Failed to save world state", "uuid", id, "error", err)
		return fmt.Errorf("failed to save world state: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*world.WorldState, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM world_states WHERE id = ?`, id.String()).Scan(&snapshot)
	if err == sql.ErrNoRows {
		s.logger.Warn("World state not found", "uuid", id)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var w world.WorldState
	if err := json.Unmarshal([]byte(snapshot), &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}

	return &w, nil
}

func (s *SQLiteStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM world_states WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete world state: %w", err)
	}
	return nil
}
