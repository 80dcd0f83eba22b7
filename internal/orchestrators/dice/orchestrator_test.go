package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
)

type DiceTestSuite struct {
	suite.Suite
	svc dice.Service
	ctx context.Context
}

func (s *DiceTestSuite) SetupTest() {
	svc, err := dice.NewOrchestrator(&dice.Config{
		IDGenerator: idgen.NewSequential("roll"),
	})
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *DiceTestSuite) TestRollDice() {
	out, err := s.svc.RollDice(s.ctx, &dice.RollDiceInput{Notation: "2d6", Modifier: 3})
	s.Require().NoError(err)

	s.Equal("roll_1", out.RollID)
	s.Len(out.Dice, 2)
	for _, d := range out.Dice {
		s.GreaterOrEqual(d, 1)
		s.LessOrEqual(d, 6)
	}
	s.GreaterOrEqual(out.Total, 2+3)
	s.LessOrEqual(out.Total, 12+3)
}

func (s *DiceTestSuite) TestRollDiceInvalidNotation() {
	for _, notation := range []string{"", "d6", "2d", "2x6", "0d6", "2d0"} {
		_, err := s.svc.RollDice(s.ctx, &dice.RollDiceInput{Notation: notation})
		s.Error(err, "notation %q must be rejected", notation)
	}
}

func (s *DiceTestSuite) TestRollCheck() {
	out, err := s.svc.RollCheck(s.ctx, &dice.RollCheckInput{
		ModifierFormula: "proficiency_bonus",
		Level:           9,
	})
	s.Require().NoError(err)

	s.Equal(4, out.Modifier, "proficiency bonus at level 9")
	s.GreaterOrEqual(out.Die, 1)
	s.LessOrEqual(out.Die, 20)
	s.Equal(out.Die+out.Modifier, out.Total)
}

func (s *DiceTestSuite) TestRollCheckDefaultsLevel() {
	out, err := s.svc.RollCheck(s.ctx, &dice.RollCheckInput{ModifierFormula: "level"})
	s.Require().NoError(err)
	s.Equal(1, out.Modifier)
}

func (s *DiceTestSuite) TestRollCheckInvalid() {
	_, err := s.svc.RollCheck(s.ctx, &dice.RollCheckInput{})
	s.Error(err)

	_, err = s.svc.RollCheck(s.ctx, &dice.RollCheckInput{ModifierFormula: "level +", Level: 5})
	s.Error(err)

	_, err = s.svc.RollCheck(s.ctx, &dice.RollCheckInput{ModifierFormula: "level", Level: 21})
	s.Error(err)
}

func TestDiceTestSuite(t *testing.T) {
	suite.Run(t, new(DiceTestSuite))
}
