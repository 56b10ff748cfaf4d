package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/case-engine/pkg/casefile"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// Storage defines persistence for world snapshots and read access to
// authored casefiles.
type Storage interface {
	// Ping tests the backing connection.
	Ping(ctx context.Context) error

	// Close releases the backing connection.
	Close() error

	// SaveWorldState persists a session snapshot under its id.
	SaveWorldState(ctx context.Context, id uuid.UUID, w *world.WorldState) error

	// LoadWorldState retrieves a session snapshot by id.
	// Returns nil if the snapshot doesn't exist.
	LoadWorldState(ctx context.Context, id uuid.UUID) (*world.WorldState, error)

	// DeleteWorldState removes a session snapshot by id.
	DeleteWorldState(ctx context.Context, id uuid.UUID) error

	// ListCasefiles returns the available casefiles as title -> filename.
	ListCasefiles(ctx context.Context) (map[string]string, error)

	// GetCasefile loads a casefile by filename.
	GetCasefile(ctx context.Context, filename string) (*casefile.Casefile, error)
}
