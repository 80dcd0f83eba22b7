// Package classes provides the interface for class document persistence
package classes

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
)

// Repository defines the interface for class document persistence
type Repository interface {
	// Get retrieves a class by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the class doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List retrieves all classes
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Save stores a class, replacing any existing document with the same ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a class by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the class doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a class
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a class
type GetOutput struct {
	Class *codex.Class
}

// ListInput defines the input for listing classes
type ListInput struct {
	// Empty for now, can be extended with filters later
}

// ListOutput defines the output for listing classes
type ListOutput struct {
	Classes []*codex.Class
}

// SaveInput defines the input for saving a class
type SaveInput struct {
	Class *codex.Class
}

// SaveOutput defines the output for saving a class
type SaveOutput struct {
	Class *codex.Class
}

// DeleteInput defines the input for deleting a class
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a class
type DeleteOutput struct {
	// Empty for now, can be extended later
}
