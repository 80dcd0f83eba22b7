package features

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-codex/internal/formula"
)

// Result is the outcome of validating a feature before save. Errors are
// author-facing strings; a non-empty list blocks persistence.
type Result struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Validate checks a feature's wrapper fields and the required fields of its
// active configuration variant. It never rejects gameplay prerequisites;
// those are advisory elsewhere.
func Validate(f *FeatureSkill) Result {
	var errs []string

	if f == nil {
		return Result{Valid: false, Errors: []string{"Feature is required."}}
	}

	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, "Title is required.")
	}
	if f.EnabledAtLevel < 1 || f.EnabledAtLevel > 20 {
		errs = append(errs, "Enabled level must be between 1 and 20.")
	}

	switch cfg := f.Config.(type) {
	case *SlotsConfig:
		errs = append(errs, checkFormula("Uses formula", cfg.UsesFormula)...)
		errs = append(errs, checkReplenish(cfg.ReplenishOn, ReplenishShortRest, ReplenishLongRest, ReplenishDawn)...)
	case *PointsPoolConfig:
		errs = append(errs, checkFormula("Total formula", cfg.TotalFormula)...)
		errs = append(errs, checkReplenish(cfg.ReplenishOn, ReplenishShortRest, ReplenishLongRest, ReplenishDawn)...)
		if cfg.MinSpend != nil && *cfg.MinSpend < 1 {
			errs = append(errs, "Minimum spend must be at least 1.")
		}
		if cfg.MaxSpend != nil && *cfg.MaxSpend < 1 {
			errs = append(errs, "Maximum spend must be at least 1.")
		}
		if cfg.MinSpend != nil && cfg.MaxSpend != nil && *cfg.MinSpend > *cfg.MaxSpend {
			errs = append(errs, "Minimum spend cannot exceed maximum spend.")
		}
	case *OptionsListConfig:
		errs = append(errs, checkFormula("Max selections formula", cfg.MaxSelectionsFormula)...)
		switch cfg.OptionsSource {
		case OptionsSourceDatabase:
			if strings.TrimSpace(cfg.DatabaseTable) == "" {
				errs = append(errs, "Database table is required when options come from the database.")
			}
		case OptionsSourceCustom:
			// nothing extra
		default:
			errs = append(errs, fmt.Sprintf("Options source %q is not recognized.", cfg.OptionsSource))
		}
	case *SpecialUXConfig:
		if strings.TrimSpace(cfg.ComponentID) == "" {
			errs = append(errs, "Component ID is required.")
		}
	case *SkillModifierConfig:
		errs = append(errs, checkFormula("Modifier formula", cfg.ModifierFormula)...)
		switch cfg.ModifierType {
		case ModifierSkill, ModifierSavingThrow, ModifierAbilityCheck, ModifierAttackRoll, ModifierDamageRoll:
		default:
			errs = append(errs, fmt.Sprintf("Modifier type %q is not recognized.", cfg.ModifierType))
		}
	case *AvailabilityToggleConfig:
		errs = append(errs, checkReplenish(cfg.ReplenishOn, ReplenishShortRest, ReplenishLongRest, ReplenishDawn, ReplenishManual)...)
		if strings.TrimSpace(cfg.AvailableText) == "" {
			errs = append(errs, "Available text is required.")
		}
		if strings.TrimSpace(cfg.UsedText) == "" {
			errs = append(errs, "Used text is required.")
		}
	case *SpellGrantConfig:
		switch cfg.CastingAbility {
		case "", CastingIntelligence, CastingWisdom, CastingCharisma:
		default:
			errs = append(errs, fmt.Sprintf("Casting ability %q is not recognized.", cfg.CastingAbility))
		}
		for i, spell := range cfg.Spells {
			errs = append(errs, validateGrantedSpell(i, spell)...)
		}
	default:
		errs = append(errs, "Feature type is required.")
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func validateGrantedSpell(index int, spell GrantedSpell) []string {
	var errs []string
	label := fmt.Sprintf("Spell %d", index+1)

	switch spell.Mode {
	case SpellModeLibrary:
		if spell.SpellID == "" {
			errs = append(errs, label+": a library spell must reference a spell.")
		}
		if strings.TrimSpace(spell.Name) == "" {
			errs = append(errs, label+": a library spell needs a name.")
		}
	case SpellModeChoice:
		if strings.TrimSpace(spell.PlaceholderName) == "" {
			errs = append(errs, label+": a choice spell needs a placeholder name.")
		}
		if spell.Criteria != nil && spell.Criteria.MaxLevel != nil && *spell.Criteria.MaxLevel < 0 {
			errs = append(errs, label+": max spell level cannot be negative.")
		}
	case SpellModeCustom:
		if strings.TrimSpace(spell.CustomName) == "" {
			errs = append(errs, label+": a custom spell needs a name.")
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: mode %q is not recognized.", label, spell.Mode))
	}

	if spell.UsesPerLongRest < 0 {
		errs = append(errs, label+": uses per long rest cannot be negative.")
	}
	switch spell.ResetOn {
	case ReplenishLongRest, ReplenishShortRest, ReplenishDawn, ReplenishAtWill:
	default:
		errs = append(errs, fmt.Sprintf("%s: reset trigger %q is not recognized.", label, spell.ResetOn))
	}

	return errs
}

func checkFormula(label, expr string) []string {
	if strings.TrimSpace(expr) == "" {
		return []string{label + " is required."}
	}
	if err := formula.Check(expr); err != nil {
		return []string{fmt.Sprintf("%s is not a valid formula: %q.", label, expr)}
	}
	return nil
}

func checkReplenish(trigger ReplenishTrigger, allowed ...ReplenishTrigger) []string {
	for _, a := range allowed {
		if trigger == a {
			return nil
		}
	}
	return []string{fmt.Sprintf("Replenish trigger %q is not recognized.", trigger)}
}
