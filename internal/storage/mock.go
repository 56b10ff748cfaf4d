package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/case-engine/pkg/casefile"
	"github.com/jwebster45206/case-engine/pkg/world"
)

// MockStorage is an in-memory implementation of Storage for testing.
type MockStorage struct {
	mu          sync.RWMutex
	worldStates map[uuid.UUID]*world.WorldState
	casefiles   map[string]*casefile.Casefile
	pingError   error
}

var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		worldStates: make(map[uuid.UUID]*world.WorldState),
		casefiles:   make(map[string]*casefile.Casefile),
	}
}

// SetPingError configures the mock to fail pings with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddCasefile registers a casefile under a filename.
func (m *MockStorage) AddCasefile(filename string, cf *casefile.Casefile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cf.FileName = filename
	m.casefiles[filename] = cf
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveWorldState(ctx context.Context, id uuid.UUID, w *world.WorldState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worldStates[id] = w
	return nil
}

func (m *MockStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*world.WorldState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worldStates[id], nil
}

func (m *MockStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.worldStates, id)
	return nil
}

func (m *MockStorage) ListCasefiles(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.casefiles))
	for filename, cf := range m.casefiles {
		out[cf.Title] = filename
	}
	return out, nil
}

func (m *MockStorage) GetCasefile(ctx context.Context, filename string) (*casefile.Casefile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cf, ok := m.casefiles[filename]
	if !ok {
		return nil, fmt.Errorf("casefile not found: %s", filename)
	}
	return cf, nil
}
