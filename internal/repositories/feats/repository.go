// Package feats provides the interface for feat document persistence
package feats

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
)

// Repository defines the interface for feat document persistence
type Repository interface {
	// Get retrieves a feat by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the feat doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all feats
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Save stores a feat, replacing any existing document with the same ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a feat by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the feat doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a feat
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a feat
type GetOutput struct {
	Feat *codex.Feat
}

// ListInput defines the input for listing feats
type ListInput struct{}

// ListOutput defines the output for listing feats
type ListOutput struct {
	Feats []*codex.Feat
}

// SaveInput defines the input for saving a feat
type SaveInput struct {
	Feat *codex.Feat
}

// SaveOutput defines the output for saving a feat
type SaveOutput struct {
	Feat *codex.Feat
}

// DeleteInput defines the input for deleting a feat
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a feat
type DeleteOutput struct{}
