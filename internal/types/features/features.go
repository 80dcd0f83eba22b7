// Package features provides the polymorphic feature configuration model shared
// by class features and feat special features. A FeatureSkill wraps exactly one
// configuration variant, selected by its feature type; the variants are a
// closed set expressed as a sealed interface so every consumer switches
// exhaustively over the same seven shapes.
package features

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/formula"
)

// Type tags the configuration variant carried by a FeatureSkill.
type Type string

// Feature types
const (
	TypeSlots              Type = "slots"
	TypePointsPool         Type = "points_pool"
	TypeOptionsList        Type = "options_list"
	TypeSpecialUX          Type = "special_ux"
	TypeSkillModifier      Type = "skill_modifier"
	TypeAvailabilityToggle Type = "availability_toggle"
	TypeSpellGrant         Type = "spell_grant"
)

// Types lists every feature type, in editor display order.
func Types() []Type {
	return []Type{
		TypeSlots,
		TypePointsPool,
		TypeOptionsList,
		TypeSpecialUX,
		TypeSkillModifier,
		TypeAvailabilityToggle,
		TypeSpellGrant,
	}
}

// IsValid reports whether t is one of the known feature types.
func (t Type) IsValid() bool {
	switch t {
	case TypeSlots, TypePointsPool, TypeOptionsList, TypeSpecialUX,
		TypeSkillModifier, TypeAvailabilityToggle, TypeSpellGrant:
		return true
	default:
		return false
	}
}

// ReplenishTrigger is the rest type that resets a consumable resource.
type ReplenishTrigger string

// Replenish triggers
const (
	ReplenishShortRest ReplenishTrigger = "short_rest"
	ReplenishLongRest  ReplenishTrigger = "long_rest"
	ReplenishDawn      ReplenishTrigger = "dawn"
	ReplenishManual    ReplenishTrigger = "manual"
	ReplenishAtWill    ReplenishTrigger = "at_will"
)

// ModifierType selects which roll a skill modifier applies to.
type ModifierType string

// Modifier types
const (
	ModifierSkill        ModifierType = "skill"
	ModifierSavingThrow  ModifierType = "saving_throw"
	ModifierAbilityCheck ModifierType = "ability_check"
	ModifierAttackRoll   ModifierType = "attack_roll"
	ModifierDamageRoll   ModifierType = "damage_roll"
)

// OptionsSource selects where an options list draws its entries from.
type OptionsSource string

// Options sources
const (
	OptionsSourceDatabase OptionsSource = "database"
	OptionsSourceCustom   OptionsSource = "custom"
)

// CastingAbility is the spellcasting ability granted spells key off.
type CastingAbility string

// Casting abilities
const (
	CastingIntelligence CastingAbility = "intelligence"
	CastingWisdom       CastingAbility = "wisdom"
	CastingCharisma     CastingAbility = "charisma"
)

// Config is the sealed union of feature configuration variants. Exactly one
// implementation exists per feature type.
type Config interface {
	isFeatureConfig()

	// Type returns the tag identifying this variant.
	Type() Type
}

// SlotsConfig is a pool of discrete uses that replenish on a rest.
type SlotsConfig struct {
	UsesFormula  string           `json:"usesFormula"`
	ReplenishOn  ReplenishTrigger `json:"replenishOn"`
	DisplayStyle string           `json:"displayStyle"` // circles, checkboxes, counter
}

func (*SlotsConfig) isFeatureConfig() {}

// Type implements Config
func (*SlotsConfig) Type() Type { return TypeSlots }

// PointsPoolConfig is a spendable pool of points.
type PointsPoolConfig struct {
	TotalFormula    string           `json:"totalFormula"`
	CanSpendPartial bool             `json:"canSpendPartial"`
	MinSpend        *int             `json:"minSpend,omitempty"`
	MaxSpend        *int             `json:"maxSpend,omitempty"`
	ReplenishOn     ReplenishTrigger `json:"replenishOn"`
	DisplayStyle    string           `json:"displayStyle"` // slider, input, increment_decrement
}

func (*PointsPoolConfig) isFeatureConfig() {}

// Type implements Config
func (*PointsPoolConfig) Type() Type { return TypePointsPool }

// SetCanSpendPartial toggles partial spending. Turning it off clears MinSpend
// and MaxSpend rather than leaving them dormant in storage.
func (c *PointsPoolConfig) SetCanSpendPartial(v bool) {
	c.CanSpendPartial = v
	if !v {
		c.MinSpend = nil
		c.MaxSpend = nil
	}
}

// OptionsListConfig lets the player pick entries from a list.
type OptionsListConfig struct {
	MaxSelectionsFormula string        `json:"maxSelectionsFormula"`
	OptionsSource        OptionsSource `json:"optionsSource"`
	DatabaseTable        string        `json:"databaseTable,omitempty"` // required iff source is database
	AllowDuplicates      bool          `json:"allowDuplicates"`
}

func (*OptionsListConfig) isFeatureConfig() {}

// Type implements Config
func (*OptionsListConfig) Type() Type { return TypeOptionsList }

// SpecialUXConfig defers rendering to a bespoke component.
type SpecialUXConfig struct {
	ComponentID  string                 `json:"componentId"`
	CustomConfig map[string]interface{} `json:"customConfig"`
}

func (*SpecialUXConfig) isFeatureConfig() {}

// Type implements Config
func (*SpecialUXConfig) Type() Type { return TypeSpecialUX }

// SkillModifierConfig adds a formula-derived bonus to a roll.
type SkillModifierConfig struct {
	ModifierFormula string       `json:"modifierFormula"`
	ModifierType    ModifierType `json:"modifierType"`
	Stackable       bool         `json:"stackable"`
	DisplayStyle    string       `json:"displayStyle"` // badge, text, icon
}

func (*SkillModifierConfig) isFeatureConfig() {}

// Type implements Config
func (*SkillModifierConfig) Type() Type { return TypeSkillModifier }

// AvailabilityToggleConfig is a single on/off use.
type AvailabilityToggleConfig struct {
	DefaultAvailable bool             `json:"defaultAvailable"`
	ReplenishOn      ReplenishTrigger `json:"replenishOn"`
	DisplayStyle     string           `json:"displayStyle"` // toggle, badge, button
	AvailableText    string           `json:"availableText"`
	UsedText         string           `json:"usedText"`
}

func (*AvailabilityToggleConfig) isFeatureConfig() {}

// Type implements Config
func (*AvailabilityToggleConfig) Type() Type { return TypeAvailabilityToggle }

// SpellGrantConfig grants one or more spells.
type SpellGrantConfig struct {
	Spells []GrantedSpell `json:"spells"`
	// CastingAbility overrides the character's default when set.
	CastingAbility CastingAbility `json:"castingAbility,omitempty"`
}

func (*SpellGrantConfig) isFeatureConfig() {}

// Type implements Config
func (*SpellGrantConfig) Type() Type { return TypeSpellGrant }

// SpellMode selects how a granted spell is defined.
type SpellMode string

// Spell modes
const (
	SpellModeLibrary SpellMode = "library"
	SpellModeChoice  SpellMode = "choice"
	SpellModeCustom  SpellMode = "custom"
)

// GrantedSpell is one spell granted by a spell_grant feature.
type GrantedSpell struct {
	ID   string    `json:"id"`
	Mode SpellMode `json:"mode"`

	// library mode
	SpellID    string `json:"spellId,omitempty"`
	Name       string `json:"name,omitempty"`
	SpellLevel int    `json:"spellLevel,omitempty"`

	// choice mode
	Criteria        *SpellCriteria `json:"criteria,omitempty"`
	PlaceholderName string         `json:"placeholderName,omitempty"`

	// custom mode
	CustomName  string `json:"customName,omitempty"`
	CustomLevel int    `json:"customLevel,omitempty"`

	UsesPerLongRest int              `json:"usesPerLongRest"`
	ResetOn         ReplenishTrigger `json:"resetOn"`
}

// SpellCriteria narrows the spell pool for a choice-mode grant.
type SpellCriteria struct {
	MaxLevel *int     `json:"maxLevel,omitempty"`
	School   string   `json:"school,omitempty"`
	Classes  []string `json:"classes,omitempty"`
}

// FeatureSkill is the versioned, leveled, optionally subclass-gated wrapper
// around one configuration variant. The variant tag is derived from Config;
// switching types always resets Config to the new variant's default.
type FeatureSkill struct {
	ID       string
	Version  int
	Title    string
	Subtitle string
	// EnabledAtLevel is the character level at which the feature activates.
	EnabledAtLevel int
	// EnabledBySubclass references a subclass ID; empty means the feature is
	// granted by the base class.
	EnabledBySubclass string
	Config            Config
}

// New creates a fresh feature with the default variant for the given type.
func New(id string, featureType Type) *FeatureSkill {
	return &FeatureSkill{
		ID:             id,
		Version:        1,
		EnabledAtLevel: 1,
		Config:         DefaultConfig(featureType),
	}
}

// FeatureType returns the tag of the active configuration variant.
func (f *FeatureSkill) FeatureType() Type {
	if f.Config == nil {
		return ""
	}
	return f.Config.Type()
}

// SetFeatureType switches the active variant. Switching to a different type
// discards the previous config entirely and installs the new variant's
// default; switching to the current type is a no-op so in-progress edits
// survive a redundant selection.
func (f *FeatureSkill) SetFeatureType(t Type) error {
	if !t.IsValid() {
		return errors.InvalidArgumentf("unknown feature type %q", t)
	}
	if f.FeatureType() == t {
		return nil
	}
	f.Config = DefaultConfig(t)
	return nil
}

// DerivedValue evaluates the variant's primary formula against a character
// context: slot count, pool total, max selections, or modifier amount. The
// second return is false for variants with no derived numeric value.
func (f *FeatureSkill) DerivedValue(fctx *formula.Context) (int, bool, error) {
	switch cfg := f.Config.(type) {
	case *SlotsConfig:
		n, err := formula.Evaluate(cfg.UsesFormula, fctx)
		return n, true, err
	case *PointsPoolConfig:
		n, err := formula.Evaluate(cfg.TotalFormula, fctx)
		return n, true, err
	case *OptionsListConfig:
		n, err := formula.Evaluate(cfg.MaxSelectionsFormula, fctx)
		return n, true, err
	case *SkillModifierConfig:
		n, err := formula.Evaluate(cfg.ModifierFormula, fctx)
		return n, true, err
	case *SpecialUXConfig, *AvailabilityToggleConfig, *SpellGrantConfig:
		return 0, false, nil
	default:
		return 0, false, errors.InvalidArgument("feature has no configuration")
	}
}

// featureSkillJSON is the stored document shape.
type featureSkillJSON struct {
	ID                string          `json:"id"`
	Version           int             `json:"version"`
	Title             string          `json:"title"`
	Subtitle          string          `json:"subtitle,omitempty"`
	FeatureType       Type            `json:"featureType"`
	EnabledAtLevel    int             `json:"enabledAtLevel"`
	EnabledBySubclass string          `json:"enabledBySubclass,omitempty"`
	Config            json.RawMessage `json:"config,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (f *FeatureSkill) MarshalJSON() ([]byte, error) {
	doc := featureSkillJSON{
		ID:                f.ID,
		Version:           f.Version,
		Title:             f.Title,
		Subtitle:          f.Subtitle,
		FeatureType:       f.FeatureType(),
		EnabledAtLevel:    f.EnabledAtLevel,
		EnabledBySubclass: f.EnabledBySubclass,
	}

	if f.Config != nil {
		raw, err := json.Marshal(f.Config)
		if err != nil {
			return nil, err
		}
		doc.Config = raw
	}

	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. The config payload is decoded
// into the variant named by featureType; fields from other variants present
// in the payload are dropped, never carried over.
func (f *FeatureSkill) UnmarshalJSON(data []byte) error {
	var doc featureSkillJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	f.ID = doc.ID
	f.Version = doc.Version
	f.Title = doc.Title
	f.Subtitle = doc.Subtitle
	f.EnabledAtLevel = doc.EnabledAtLevel
	f.EnabledBySubclass = doc.EnabledBySubclass

	if doc.FeatureType == "" {
		f.Config = nil
		return nil
	}
	if !doc.FeatureType.IsValid() {
		return errors.InvalidArgumentf("unknown feature type %q", doc.FeatureType)
	}

	cfg := DefaultConfig(doc.FeatureType)
	if len(doc.Config) > 0 {
		if err := json.Unmarshal(doc.Config, cfg); err != nil {
			return errors.Wrapf(err, "failed to decode %s config", doc.FeatureType)
		}
	}

	// Partial-spend bounds are cleared, not dormant: enforce on load too.
	if pool, ok := cfg.(*PointsPoolConfig); ok && !pool.CanSpendPartial {
		pool.MinSpend = nil
		pool.MaxSpend = nil
	}

	f.Config = cfg
	return nil
}
