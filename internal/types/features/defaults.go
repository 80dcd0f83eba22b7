package features

// Display style defaults and options per variant.
const (
	SlotsDisplayCircles    = "circles"
	SlotsDisplayCheckboxes = "checkboxes"
	SlotsDisplayCounter    = "counter"

	PoolDisplaySlider             = "slider"
	PoolDisplayInput              = "input"
	PoolDisplayIncrementDecrement = "increment_decrement"

	ModifierDisplayBadge = "badge"
	ModifierDisplayText  = "text"
	ModifierDisplayIcon  = "icon"

	ToggleDisplayToggle = "toggle"
	ToggleDisplayBadge  = "badge"
	ToggleDisplayButton = "button"
)

// DefaultConfig returns a fresh default configuration for the given feature
// type. It is pure and idempotent: two calls with the same tag return
// structurally equal values with no shared state, so switching a feature
// away from a type and back reproduces the same default.
func DefaultConfig(t Type) Config {
	switch t {
	case TypeSlots:
		return &SlotsConfig{
			UsesFormula:  "fixed:1",
			ReplenishOn:  ReplenishLongRest,
			DisplayStyle: SlotsDisplayCircles,
		}
	case TypePointsPool:
		return &PointsPoolConfig{
			TotalFormula:    "level",
			CanSpendPartial: true,
			ReplenishOn:     ReplenishLongRest,
			DisplayStyle:    PoolDisplaySlider,
		}
	case TypeOptionsList:
		return &OptionsListConfig{
			MaxSelectionsFormula: "fixed:1",
			OptionsSource:        OptionsSourceCustom,
			AllowDuplicates:      false,
		}
	case TypeSpecialUX:
		return &SpecialUXConfig{
			ComponentID:  "",
			CustomConfig: map[string]interface{}{},
		}
	case TypeSkillModifier:
		return &SkillModifierConfig{
			ModifierFormula: "proficiency_bonus",
			ModifierType:    ModifierSkill,
			Stackable:       false,
			DisplayStyle:    ModifierDisplayBadge,
		}
	case TypeAvailabilityToggle:
		return &AvailabilityToggleConfig{
			DefaultAvailable: true,
			ReplenishOn:      ReplenishLongRest,
			DisplayStyle:     ToggleDisplayToggle,
			AvailableText:    "Available",
			UsedText:         "Used",
		}
	case TypeSpellGrant:
		return &SpellGrantConfig{
			Spells: []GrantedSpell{},
		}
	default:
		return nil
	}
}
