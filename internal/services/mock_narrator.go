package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/case-engine/pkg/narrative"
)

// MockNarrator is a mock implementation of Narrator for testing.
type MockNarrator struct {
	InitModelFunc         func(ctx context.Context, modelName string) error
	GenerateNarrationFunc func(ctx context.Context, nc *narrative.Context) (string, error)

	// Track calls for testing
	InitModelCalls         []string
	GenerateNarrationCalls []*narrative.Context

	mu sync.Mutex // protects all fields above
}

var _ Narrator = (*MockNarrator)(nil)

// NewMockNarrator creates a new mock narrator.
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{}
}

// InitModel mocks model initialization.
func (m *MockNarrator) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// GenerateNarration mocks narration generation. The default returns a
// short fixed string.
func (m *MockNarrator) GenerateNarration(ctx context.Context, nc *narrative.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateNarrationCalls = append(m.GenerateNarrationCalls, nc)
	if m.GenerateNarrationFunc != nil {
		return m.GenerateNarrationFunc(ctx, nc)
	}
	return "The scene unfolds before you.", nil
}
