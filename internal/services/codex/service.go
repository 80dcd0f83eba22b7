// Package codex defines the interface for content authoring operations
package codex

import (
	"context"

	"github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
)

// Service defines the interface for content authoring operations
type Service interface {
	// Class operations
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)
	SaveClass(ctx context.Context, input *SaveClassInput) (*SaveClassOutput, error)
	DeleteClass(ctx context.Context, input *DeleteClassInput) (*DeleteClassOutput, error)

	// Race operations
	ListRaces(ctx context.Context, input *ListRacesInput) (*ListRacesOutput, error)
	GetRace(ctx context.Context, input *GetRaceInput) (*GetRaceOutput, error)
	SaveRace(ctx context.Context, input *SaveRaceInput) (*SaveRaceOutput, error)
	DeleteRace(ctx context.Context, input *DeleteRaceInput) (*DeleteRaceOutput, error)

	// Background operations
	ListBackgrounds(ctx context.Context, input *ListBackgroundsInput) (*ListBackgroundsOutput, error)
	GetBackground(ctx context.Context, input *GetBackgroundInput) (*GetBackgroundOutput, error)
	SaveBackground(ctx context.Context, input *SaveBackgroundInput) (*SaveBackgroundOutput, error)
	DeleteBackground(ctx context.Context, input *DeleteBackgroundInput) (*DeleteBackgroundOutput, error)

	// Feat operations
	ListFeats(ctx context.Context, input *ListFeatsInput) (*ListFeatsOutput, error)
	GetFeat(ctx context.Context, input *GetFeatInput) (*GetFeatOutput, error)
	SaveFeat(ctx context.Context, input *SaveFeatInput) (*SaveFeatOutput, error)
	DeleteFeat(ctx context.Context, input *DeleteFeatInput) (*DeleteFeatOutput, error)

	// Campaign operations
	ListCampaigns(ctx context.Context, input *ListCampaignsInput) (*ListCampaignsOutput, error)
	GetCampaign(ctx context.Context, input *GetCampaignInput) (*GetCampaignOutput, error)
	SaveCampaign(ctx context.Context, input *SaveCampaignInput) (*SaveCampaignOutput, error)
	DeleteCampaign(ctx context.Context, input *DeleteCampaignInput) (*DeleteCampaignOutput, error)
	TestCampaignWebhook(ctx context.Context, input *TestCampaignWebhookInput) (*TestCampaignWebhookOutput, error)

	// Feature authoring support
	ValidateFeature(ctx context.Context, input *ValidateFeatureInput) (*ValidateFeatureOutput, error)
	PreviewFeature(ctx context.Context, input *PreviewFeatureInput) (*PreviewFeatureOutput, error)
	ListFeatureOptions(ctx context.Context, input *ListFeatureOptionsInput) (*ListFeatureOptionsOutput, error)
}

// Class operation types

// ListClassesInput defines the request for listing classes
type ListClassesInput struct{}

// ListClassesOutput defines the response for listing classes
type ListClassesOutput struct {
	Classes []*codex.Class
}

// GetClassInput defines the request for getting a class
type GetClassInput struct {
	ClassID string
}

// GetClassOutput defines the response for getting a class
type GetClassOutput struct {
	Class *codex.Class
}

// SaveClassInput defines the request for saving a class. An empty ID means
// a new class; the service mints one.
type SaveClassInput struct {
	Class *codex.Class
}

// SaveClassOutput defines the response for saving a class
type SaveClassOutput struct {
	Class *codex.Class
}

// DeleteClassInput defines the request for deleting a class
type DeleteClassInput struct {
	ClassID string
}

// DeleteClassOutput defines the response for deleting a class
type DeleteClassOutput struct{}

// Race operation types

// ListRacesInput defines the request for listing races
type ListRacesInput struct{}

// ListRacesOutput defines the response for listing races
type ListRacesOutput struct {
	Races []*codex.Race
}

// GetRaceInput defines the request for getting a race
type GetRaceInput struct {
	RaceID string
}

// GetRaceOutput defines the response for getting a race
type GetRaceOutput struct {
	Race *codex.Race
}

// SaveRaceInput defines the request for saving a race
type SaveRaceInput struct {
	Race *codex.Race
}

// SaveRaceOutput defines the response for saving a race
type SaveRaceOutput struct {
	Race *codex.Race
}

// DeleteRaceInput defines the request for deleting a race
type DeleteRaceInput struct {
	RaceID string
}

// DeleteRaceOutput defines the response for deleting a race
type DeleteRaceOutput struct{}

// Background operation types

// ListBackgroundsInput defines the request for listing backgrounds
type ListBackgroundsInput struct{}

// ListBackgroundsOutput defines the response for listing backgrounds
type ListBackgroundsOutput struct {
	Backgrounds []*codex.Background
}

// GetBackgroundInput defines the request for getting a background
type GetBackgroundInput struct {
	BackgroundID string
}

// GetBackgroundOutput defines the response for getting a background
type GetBackgroundOutput struct {
	Background *codex.Background
}

// SaveBackgroundInput defines the request for saving a background
type SaveBackgroundInput struct {
	Background *codex.Background
}

// SaveBackgroundOutput defines the response for saving a background
type SaveBackgroundOutput struct {
	Background *codex.Background
}

// DeleteBackgroundInput defines the request for deleting a background
type DeleteBackgroundInput struct {
	BackgroundID string
}

// DeleteBackgroundOutput defines the response for deleting a background
type DeleteBackgroundOutput struct{}

// Feat operation types

// ListFeatsInput defines the request for listing feats
type ListFeatsInput struct{}

// ListFeatsOutput defines the response for listing feats
type ListFeatsOutput struct {
	Feats []*codex.Feat
}

// GetFeatInput defines the request for getting a feat
type GetFeatInput struct {
	FeatID string
}

// GetFeatOutput defines the response for getting a feat
type GetFeatOutput struct {
	Feat *codex.Feat
}

// SaveFeatInput defines the request for saving a feat
type SaveFeatInput struct {
	Feat *codex.Feat
}

// SaveFeatOutput defines the response for saving a feat
type SaveFeatOutput struct {
	Feat *codex.Feat
}

// DeleteFeatInput defines the request for deleting a feat
type DeleteFeatInput struct {
	FeatID string
}

// DeleteFeatOutput defines the response for deleting a feat
type DeleteFeatOutput struct{}

// Campaign operation types

// ListCampaignsInput defines the request for listing campaigns
type ListCampaignsInput struct{}

// ListCampaignsOutput defines the response for listing campaigns
type ListCampaignsOutput struct {
	Campaigns []*codex.Campaign
}

// GetCampaignInput defines the request for getting a campaign. Either the ID
// or the invite code may be set; ID wins when both are.
type GetCampaignInput struct {
	CampaignID string
	InviteCode string
}

// GetCampaignOutput defines the response for getting a campaign
type GetCampaignOutput struct {
	Campaign *codex.Campaign
}

// SaveCampaignInput defines the request for saving a campaign
type SaveCampaignInput struct {
	Campaign *codex.Campaign
}

// SaveCampaignOutput defines the response for saving a campaign
type SaveCampaignOutput struct {
	Campaign *codex.Campaign
}

// DeleteCampaignInput defines the request for deleting a campaign
type DeleteCampaignInput struct {
	CampaignID string
}

// DeleteCampaignOutput defines the response for deleting a campaign
type DeleteCampaignOutput struct{}

// TestCampaignWebhookInput defines the request for testing a campaign's
// Discord webhook
type TestCampaignWebhookInput struct {
	CampaignID string
}

// TestCampaignWebhookOutput defines the response for testing a webhook
type TestCampaignWebhookOutput struct {
	Delivered bool
}

// Feature authoring types

// ValidateFeatureInput defines the request for validating a feature
type ValidateFeatureInput struct {
	Feature *features.FeatureSkill
}

// ValidateFeatureOutput defines the response for validating a feature
type ValidateFeatureOutput struct {
	Result features.Result
}

// PreviewFeatureInput defines the request for previewing a feature's derived
// value at a character level
type PreviewFeatureInput struct {
	Feature *features.FeatureSkill
	Level   int
}

// PreviewFeatureOutput defines the response for previewing a feature
type PreviewFeatureOutput struct {
	// Value is the evaluated formula result
	Value int
	// HasValue is false for feature types with no derived numeric value
	HasValue bool
}

// ListFeatureOptionsInput defines the request for resolving an options_list
// feature's choices from the SRD catalog
type ListFeatureOptionsInput struct {
	// Table names the catalog to draw from: "spells" or "equipment"
	Table string
	// SpellCriteria narrows spell tables; ignored for other tables
	SpellCriteria *catalog.ListSpellsInput
	// EquipmentCategory narrows equipment tables; ignored for other tables
	EquipmentCategory string
}

// ListFeatureOptionsOutput defines the response for resolving feature options
type ListFeatureOptionsOutput struct {
	Options []FeatureOption
}

// FeatureOption is one selectable entry resolved from the catalog
type FeatureOption struct {
	Key  string
	Name string
	// Detail is a short human-readable qualifier, e.g. "level 3 evocation"
	Detail string
}
