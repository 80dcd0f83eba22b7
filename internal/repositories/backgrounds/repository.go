// Package backgrounds provides the interface for background document persistence
package backgrounds

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
)

// Repository defines the interface for background document persistence
type Repository interface {
	// Get retrieves a background by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the background doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all backgrounds
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Save stores a background, replacing any existing document with the same ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a background by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the background doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a background
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a background
type GetOutput struct {
	Background *codex.Background
}

// ListInput defines the input for listing backgrounds
type ListInput struct{}

// ListOutput defines the output for listing backgrounds
type ListOutput struct {
	Backgrounds []*codex.Background
}

// SaveInput defines the input for saving a background
type SaveInput struct {
	Background *codex.Background
}

// SaveOutput defines the output for saving a background
type SaveOutput struct {
	Background *codex.Background
}

// DeleteInput defines the input for deleting a background
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a background
type DeleteOutput struct{}
