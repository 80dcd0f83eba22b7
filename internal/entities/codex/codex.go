// Package codex implements the authored game-content entities.
// These are data-only structs. Validation lives with the type packages and
// the orchestrator; nothing here computes derived values.
package codex

import (
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
	"github.com/KirkDiggler/rpg-codex/internal/types/proficiency"
	"github.com/KirkDiggler/rpg-codex/internal/types/racefeature"
)

// Class is an authored character class document.
type Class struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	HitDie         int                     `json:"hit_die"`
	PrimaryAbility string                  `json:"primary_ability"`
	SavingThrows   []string                `json:"saving_throws"`
	Skills         *proficiency.Set        `json:"skills"`
	Subclasses     []Subclass              `json:"subclasses,omitempty"`
	Features       []features.FeatureSkill `json:"features"`
	CreatedAt      int64                   `json:"created_at"`
	UpdatedAt      int64                   `json:"updated_at"`
}

// Subclass is a named branch of a class. Features gated to a subclass
// reference its ID via their EnabledBySubclass field.
type Subclass struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Race is an authored race document.
type Race struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Speed          int                   `json:"speed"`
	Size           string                `json:"size"`
	AbilityBonuses map[string]int        `json:"ability_bonuses,omitempty"`
	Features       []racefeature.Feature `json:"features"`
	CreatedAt      int64                 `json:"created_at"`
	UpdatedAt      int64                 `json:"updated_at"`
}

// Background is an authored background document. The three proficiency sets
// are stored collapsed: nil means the background grants nothing of that kind.
type Background struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Skills             *proficiency.Set `json:"skills"`
	Tools              *proficiency.Set `json:"tools"`
	Languages          *proficiency.Set `json:"languages"`
	Equipment          []string         `json:"equipment,omitempty"`
	GoldPieces         int              `json:"gold_pieces"`
	FeatureName        string           `json:"feature_name"`
	FeatureDescription string           `json:"feature_description"`
	CreatedAt          int64            `json:"created_at"`
	UpdatedAt          int64            `json:"updated_at"`
}

// Feat is an authored feat document. Prerequisites are advisory text shown
// to players; nothing enforces them.
type Feat struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Prerequisites   string                  `json:"prerequisites,omitempty"`
	Skills          *proficiency.Set        `json:"skills"`
	SpecialFeatures []features.FeatureSkill `json:"special_features,omitempty"`
	CreatedAt       int64                   `json:"created_at"`
	UpdatedAt       int64                   `json:"updated_at"`
}

// Campaign groups characters under a game master and carries the Discord
// integration settings.
type Campaign struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	InviteCode        string `json:"invite_code"`
	DiscordWebhookURL string `json:"discord_webhook_url,omitempty"`
	MaxPlayers        int    `json:"max_players,omitempty"`
	CreatedAt         int64  `json:"created_at"`
	UpdatedAt         int64  `json:"updated_at"`
}
