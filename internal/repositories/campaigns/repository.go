// Package campaigns provides the interface for campaign persistence
package campaigns

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
)

// Repository defines the interface for campaign persistence
type Repository interface {
	// Get retrieves a campaign by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the campaign doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByInviteCode retrieves a campaign by its invite code
	// Returns errors.InvalidArgument for empty codes
	// Returns errors.NotFound if no campaign uses the code
	// Returns errors.Internal for storage failures
	GetByInviteCode(ctx context.Context, input GetByInviteCodeInput) (*GetByInviteCodeOutput, error)

	// List retrieves all campaigns
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Save stores a campaign, replacing any existing document with the same ID
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the invite code is taken by another campaign
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete deletes a campaign by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the campaign doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a campaign
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a campaign
type GetOutput struct {
	Campaign *codex.Campaign
}

// GetByInviteCodeInput defines the input for looking up a campaign by invite code
type GetByInviteCodeInput struct {
	InviteCode string
}

// GetByInviteCodeOutput defines the output for looking up a campaign by invite code
type GetByInviteCodeOutput struct {
	Campaign *codex.Campaign
}

// ListInput defines the input for listing campaigns
type ListInput struct{}

// ListOutput defines the output for listing campaigns
type ListOutput struct {
	Campaigns []*codex.Campaign
}

// SaveInput defines the input for saving a campaign
type SaveInput struct {
	Campaign *codex.Campaign
}

// SaveOutput defines the output for saving a campaign
type SaveOutput struct {
	Campaign *codex.Campaign
}

// DeleteInput defines the input for deleting a campaign
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a campaign
type DeleteOutput struct{}
