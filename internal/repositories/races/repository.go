// Package races provides the interface for race document persistence
package races

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
)

// Repository defines the interface for race document persistence
type Repository interface {
	// Get retrieves a race by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the race doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all races
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Save stores a race, replacing any existing document with the same ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a race by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the race doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a race
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a race
type GetOutput struct {
	Race *codex.Race
}

// ListInput defines the input for listing races
type ListInput struct{}

// ListOutput defines the output for listing races
type ListOutput struct {
	Races []*codex.Race
}

// SaveInput defines the input for saving a race
type SaveInput struct {
	Race *codex.Race
}

// SaveOutput defines the output for saving a race
type SaveOutput struct {
	Race *codex.Race
}

// DeleteInput defines the input for deleting a race
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a race
type DeleteOutput struct{}
