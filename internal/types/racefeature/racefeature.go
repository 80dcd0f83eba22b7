// Package racefeature provides the polymorphic race-granted capability model.
// Race features use their own tag space, independent of the class/feat
// feature configuration variants. A choice feature nests one level of
// options; the option type set deliberately excludes choice, so nesting is
// capped at depth two by construction rather than by a runtime check.
package racefeature

import (
	"fmt"
	"strings"
)

// Type tags a race feature.
type Type string

// Race feature types
const (
	TypeSkillProficiency    Type = "skill_proficiency"
	TypeWeaponProficiency   Type = "weapon_proficiency"
	TypeToolProficiency     Type = "tool_proficiency"
	TypeTrait               Type = "trait"
	TypeSpell               Type = "spell"
	TypeChoice              Type = "choice"
	TypeFeat                Type = "feat"
	TypeDarkvision          Type = "darkvision"
	TypeDamageResistance    Type = "damage_resistance"
	TypeDamageImmunity      Type = "damage_immunity"
	TypeConditionImmunity   Type = "condition_immunity"
	TypeLanguageProficiency Type = "language_proficiency"
	TypeInnateSpellcasting  Type = "innate_spellcasting"
)

// IsValid reports whether t is a known race feature type.
func (t Type) IsValid() bool {
	switch t {
	case TypeSkillProficiency, TypeWeaponProficiency, TypeToolProficiency,
		TypeTrait, TypeSpell, TypeChoice, TypeFeat, TypeDarkvision,
		TypeDamageResistance, TypeDamageImmunity, TypeConditionImmunity,
		TypeLanguageProficiency, TypeInnateSpellcasting:
		return true
	default:
		return false
	}
}

// Feature is one race-granted capability. Only the fields relevant to Type
// are meaningful; Trim drops the rest before save. Downstream consumers
// should still tolerate extra keys.
type Feature struct {
	Type        Type   `json:"feature_type"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// skill_proficiency
	Skills        []string `json:"skills,omitempty"`
	SkillOptions  []string `json:"skill_options,omitempty"`
	MaxSelections int      `json:"max_selections,omitempty"`

	// weapon_proficiency / tool_proficiency / language_proficiency
	Weapons   []string `json:"weapons,omitempty"`
	Tools     []string `json:"tools,omitempty"`
	Languages []string `json:"languages,omitempty"`

	// darkvision
	DarkvisionRange int `json:"darkvision_range,omitempty"`

	// damage_resistance / damage_immunity
	DamageTypes []string `json:"damage_types,omitempty"`

	// condition_immunity
	Conditions []string `json:"conditions,omitempty"`

	// spell
	SpellID   string `json:"spell_id,omitempty"`
	SpellName string `json:"spell_name,omitempty"`

	// feat
	FeatID string `json:"feat_id,omitempty"`

	// innate_spellcasting
	InnateSpells   []InnateSpell `json:"innate_spells,omitempty"`
	CastingAbility string        `json:"casting_ability,omitempty"`

	// choice
	Options []ChoiceOption `json:"options,omitempty"`
}

// InnateSpell is one spell in an innate spellcasting feature.
type InnateSpell struct {
	SpellID    string `json:"spell_id"`
	SpellName  string `json:"spell_name"`
	UsesPerDay int    `json:"uses_per_day,omitempty"` // zero means at will
}

// OptionType tags a nested choice option. The set intentionally excludes
// choice: an option can never contain further options.
type OptionType string

// Choice option types
const (
	OptionTrait             OptionType = "trait"
	OptionDarkvision        OptionType = "darkvision"
	OptionSkillProficiency  OptionType = "skill_proficiency"
	OptionWeaponProficiency OptionType = "weapon_proficiency"
	OptionSpell             OptionType = "spell"
)

// IsValid reports whether t is a known option type.
func (t OptionType) IsValid() bool {
	switch t {
	case OptionTrait, OptionDarkvision, OptionSkillProficiency,
		OptionWeaponProficiency, OptionSpell:
		return true
	default:
		return false
	}
}

// ChoiceOption is one selectable option under a choice feature.
type ChoiceOption struct {
	Type        OptionType `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`

	DarkvisionRange int      `json:"darkvision_range,omitempty"`
	Weapons         []string `json:"weapons,omitempty"`
	SkillChoice     []string `json:"skill_choice,omitempty"`
	SkillCount      int      `json:"skill_count,omitempty"`
	SpellID         string   `json:"spell_id,omitempty"`
	SpellName       string   `json:"spell_name,omitempty"`
}

// Validate checks an option before it can be committed to a choice feature.
func (o *ChoiceOption) Validate() []string {
	var errs []string
	if !o.Type.IsValid() {
		errs = append(errs, fmt.Sprintf("Option type %q is not recognized.", o.Type))
	}
	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, "Option name is required.")
	}
	if strings.TrimSpace(o.Description) == "" {
		errs = append(errs, "Option description is required.")
	}
	return errs
}

// Trimmed returns a copy of the option with fields irrelevant to its type
// zeroed out.
func (o ChoiceOption) Trimmed() ChoiceOption {
	trimmed := ChoiceOption{
		Type:        o.Type,
		Name:        o.Name,
		Description: o.Description,
	}
	switch o.Type {
	case OptionDarkvision:
		trimmed.DarkvisionRange = o.DarkvisionRange
	case OptionWeaponProficiency:
		if len(o.Weapons) > 0 {
			trimmed.Weapons = o.Weapons
		}
	case OptionSkillProficiency:
		trimmed.SkillChoice = o.SkillChoice
		trimmed.SkillCount = o.SkillCount
	case OptionSpell:
		trimmed.SpellID = o.SpellID
		trimmed.SpellName = o.SpellName
	case OptionTrait:
		// name and description only
	}
	return trimmed
}

// Validate checks a feature before save.
func (f *Feature) Validate() []string {
	var errs []string

	if !f.Type.IsValid() {
		errs = append(errs, fmt.Sprintf("Feature type %q is not recognized.", f.Type))
		return errs
	}
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "Feature name is required.")
	}

	switch f.Type {
	case TypeDarkvision:
		if f.DarkvisionRange <= 0 {
			errs = append(errs, "Darkvision range must be positive.")
		}
	case TypeDamageResistance, TypeDamageImmunity:
		if len(f.DamageTypes) == 0 {
			errs = append(errs, "At least one damage type is required.")
		}
	case TypeConditionImmunity:
		if len(f.Conditions) == 0 {
			errs = append(errs, "At least one condition is required.")
		}
	case TypeChoice:
		if len(f.Options) == 0 {
			errs = append(errs, "A choice feature needs at least one option.")
		}
		if f.MaxSelections < 0 {
			errs = append(errs, "Max selections cannot be negative.")
		}
		for i := range f.Options {
			for _, msg := range f.Options[i].Validate() {
				errs = append(errs, fmt.Sprintf("Option %d: %s", i+1, msg))
			}
		}
	case TypeSkillProficiency:
		if len(f.Skills) == 0 && len(f.SkillOptions) == 0 {
			errs = append(errs, "A skill proficiency needs skills or skill options.")
		}
	case TypeSpell:
		if f.SpellID == "" && strings.TrimSpace(f.SpellName) == "" {
			errs = append(errs, "A spell feature needs a spell.")
		}
	case TypeInnateSpellcasting:
		if len(f.InnateSpells) == 0 {
			errs = append(errs, "Innate spellcasting needs at least one spell.")
		}
	}

	return errs
}

// Trim returns a copy of the feature keeping only the fields relevant to its
// type, with choice options trimmed recursively (one level deep, the maximum
// the model allows).
func (f Feature) Trim() Feature {
	trimmed := Feature{
		Type:        f.Type,
		Name:        f.Name,
		Description: f.Description,
	}

	switch f.Type {
	case TypeSkillProficiency:
		trimmed.Skills = f.Skills
		trimmed.SkillOptions = f.SkillOptions
		if len(f.SkillOptions) > 0 {
			trimmed.MaxSelections = f.MaxSelections
		}
	case TypeWeaponProficiency:
		if len(f.Weapons) > 0 {
			trimmed.Weapons = f.Weapons
		}
	case TypeToolProficiency:
		trimmed.Tools = f.Tools
	case TypeLanguageProficiency:
		trimmed.Languages = f.Languages
	case TypeDarkvision:
		trimmed.DarkvisionRange = f.DarkvisionRange
	case TypeDamageResistance, TypeDamageImmunity:
		trimmed.DamageTypes = f.DamageTypes
	case TypeConditionImmunity:
		trimmed.Conditions = f.Conditions
	case TypeSpell:
		trimmed.SpellID = f.SpellID
		trimmed.SpellName = f.SpellName
	case TypeFeat:
		trimmed.FeatID = f.FeatID
	case TypeInnateSpellcasting:
		trimmed.InnateSpells = f.InnateSpells
		trimmed.CastingAbility = f.CastingAbility
	case TypeChoice:
		trimmed.MaxSelections = f.MaxSelections
		trimmed.Options = make([]ChoiceOption, len(f.Options))
		for i, opt := range f.Options {
			trimmed.Options[i] = opt.Trimmed()
		}
	case TypeTrait:
		// name and description only
	}

	return trimmed
}
