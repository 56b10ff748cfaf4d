package services

import (
	"context"

	"github.com/jwebster45206/case-engine/pkg/narrative"
)

// Narrator defines the interface for external narrative generation.
// Implementations are consumed by the engine after state mutation has
// already been committed; any failure is recovered with the static
// template fallback and never surfaced to the player.
type Narrator interface {
	// InitModel prepares the backing model on startup.
	InitModel(ctx context.Context, modelName string) error

	// GenerateNarration produces prose for an applied action.
	GenerateNarration(ctx context.Context, nc *narrative.Context) (string, error)
}
