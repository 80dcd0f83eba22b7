package features_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/types/features"
)

type ValidateTestSuite struct {
	suite.Suite
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateTestSuite))
}

func (s *ValidateTestSuite) validSlotsFeature() *features.FeatureSkill {
	f := features.New("feat_bardic", features.TypeSlots)
	f.Title = "Bardic Inspiration"
	return f
}

func (s *ValidateTestSuite) TestTitleGatesSave() {
	f := s.validSlotsFeature()
	f.Title = ""

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Title is required.")

	f.Title = "Bardic Inspiration"
	result = features.Validate(f)
	s.Assert().True(result.Valid)
	s.Assert().Empty(result.Errors)
}

func (s *ValidateTestSuite) TestEnabledLevelRange() {
	for _, level := range []int{0, -1, 21} {
		f := s.validSlotsFeature()
		f.EnabledAtLevel = level
		result := features.Validate(f)
		s.Assert().False(result.Valid, "level %d must be rejected", level)
	}

	for _, level := range []int{1, 10, 20} {
		f := s.validSlotsFeature()
		f.EnabledAtLevel = level
		s.Assert().True(features.Validate(f).Valid, "level %d must be accepted", level)
	}
}

func (s *ValidateTestSuite) TestNilConfig() {
	f := &features.FeatureSkill{Title: "Broken", EnabledAtLevel: 1}
	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Feature type is required.")
}

func (s *ValidateTestSuite) TestSlotsRequiresFormula() {
	f := s.validSlotsFeature()
	f.Config.(*features.SlotsConfig).UsesFormula = ""
	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Uses formula is required.")

	f.Config.(*features.SlotsConfig).UsesFormula = "level *"
	result = features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors[0], "not a valid formula")
}

func (s *ValidateTestSuite) TestPointsPoolSpendBounds() {
	one, five := 1, 5
	f := features.New("feat_ki", features.TypePointsPool)
	f.Title = "Ki"
	pool := f.Config.(*features.PointsPoolConfig)
	pool.MinSpend = &five
	pool.MaxSpend = &one

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Minimum spend cannot exceed maximum spend.")

	pool.MinSpend = &one
	pool.MaxSpend = &five
	s.Assert().True(features.Validate(f).Valid)
}

func (s *ValidateTestSuite) TestOptionsListDatabaseTable() {
	f := features.New("feat_expertise", features.TypeOptionsList)
	f.Title = "Expertise"
	cfg := f.Config.(*features.OptionsListConfig)
	cfg.OptionsSource = features.OptionsSourceDatabase

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Database table is required when options come from the database.")

	cfg.DatabaseTable = "spells"
	s.Assert().True(features.Validate(f).Valid)
}

func (s *ValidateTestSuite) TestSpecialUXComponentID() {
	f := features.New("feat_wildshape", features.TypeSpecialUX)
	f.Title = "Wild Shape"

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Component ID is required.")

	f.Config.(*features.SpecialUXConfig).ComponentID = "wild-shape-picker"
	s.Assert().True(features.Validate(f).Valid)
}

func (s *ValidateTestSuite) TestSkillModifierEnums() {
	f := features.New("feat_jack", features.TypeSkillModifier)
	f.Title = "Jack of All Trades"
	cfg := f.Config.(*features.SkillModifierConfig)
	cfg.ModifierFormula = "floor(proficiency_bonus / 2)"
	cfg.ModifierType = features.ModifierType("luck")

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors[0], "Modifier type")

	cfg.ModifierType = features.ModifierAbilityCheck
	s.Assert().True(features.Validate(f).Valid)
}

func (s *ValidateTestSuite) TestAvailabilityToggleTexts() {
	f := features.New("feat_secondwind", features.TypeAvailabilityToggle)
	f.Title = "Second Wind"
	cfg := f.Config.(*features.AvailabilityToggleConfig)
	cfg.UsedText = "  "

	result := features.Validate(f)
	s.Require().False(result.Valid)
	s.Assert().Contains(result.Errors, "Used text is required.")
}

func (s *ValidateTestSuite) TestSpellGrantModes() {
	f := features.New("feat_magic_initiate", features.TypeSpellGrant)
	f.Title = "Magic Initiate"
	cfg := f.Config.(*features.SpellGrantConfig)
	cfg.CastingAbility = features.CastingCharisma
	cfg.Spells = []features.GrantedSpell{
		{
			ID:      "gs_1",
			Mode:    features.SpellModeLibrary,
			SpellID: "spell_fire-bolt",
			Name:    "Fire Bolt",
			ResetOn: features.ReplenishAtWill,
		},
		{
			ID:              "gs_2",
			Mode:            features.SpellModeChoice,
			PlaceholderName: "A 1st-level enchantment",
			UsesPerLongRest: 1,
			ResetOn:         features.ReplenishLongRest,
		},
	}

	s.Assert().True(features.Validate(f).Valid)

	s.Run("library spell missing reference", func() {
		cfg.Spells[0].SpellID = ""
		result := features.Validate(f)
		s.Require().False(result.Valid)
		s.Assert().Contains(result.Errors[0], "library spell must reference a spell")
		cfg.Spells[0].SpellID = "spell_fire-bolt"
	})

	s.Run("choice spell missing placeholder", func() {
		cfg.Spells[1].PlaceholderName = ""
		result := features.Validate(f)
		s.Require().False(result.Valid)
		s.Assert().Contains(result.Errors[0], "placeholder name")
		cfg.Spells[1].PlaceholderName = "A 1st-level enchantment"
	})

	s.Run("negative uses", func() {
		cfg.Spells[1].UsesPerLongRest = -1
		result := features.Validate(f)
		s.Require().False(result.Valid)
		s.Assert().Contains(result.Errors[0], "uses per long rest")
		cfg.Spells[1].UsesPerLongRest = 1
	})

	s.Run("bad reset trigger", func() {
		cfg.Spells[0].ResetOn = features.ReplenishTrigger("weekly")
		result := features.Validate(f)
		s.Require().False(result.Valid)
		s.Assert().Contains(result.Errors[0], "reset trigger")
	})
}
