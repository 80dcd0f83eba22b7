package backgrounds_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/backgrounds"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
	"github.com/KirkDiggler/rpg-codex/internal/types/proficiency"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      backgrounds.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, client := testutils.CreateTestRedis(s.T())
	s.miniRedis = mr

	repo, err := backgrounds.NewRedis(&backgrounds.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) testBackground(id, name string) *codex.Background {
	skills := proficiency.New()
	skills.SetFixed([]string{"insight", "religion"})

	languages := proficiency.New()
	languages.SetChoiceCount(2)

	return &codex.Background{
		ID:                 id,
		Name:               name,
		Description:        "Raised in a monastery.",
		Skills:             skills,
		Languages:          languages,
		Equipment:          []string{"holy symbol", "prayer book"},
		GoldPieces:         15,
		FeatureName:        "Shelter of the Faithful",
		FeatureDescription: "Free healing at temples of your faith.",
	}
}

func (s *RedisRepositoryTestSuite) TestSaveGetDeleteLifecycle() {
	bg := s.testBackground("background_acolyte", "Acolyte")

	_, err := s.repo.Save(s.ctx, backgrounds.SaveInput{Background: bg})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, backgrounds.GetInput{ID: "background_acolyte"})
	s.Require().NoError(err)
	s.Equal("Acolyte", getOut.Background.Name)

	// Proficiency sets keep their shape across storage
	s.Require().NotNil(getOut.Background.Skills)
	s.Equal([]string{"insight", "religion"}, getOut.Background.Skills.Fixed)
	s.Require().NotNil(getOut.Background.Languages)
	s.Require().NotNil(getOut.Background.Languages.Choice)
	s.Equal(2, getOut.Background.Languages.Choice.Count)
	s.Nil(getOut.Background.Tools, "an absent set stays absent")

	_, err = s.repo.Delete(s.ctx, backgrounds.DeleteInput{ID: "background_acolyte"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, backgrounds.GetInput{ID: "background_acolyte"})
	s.Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *RedisRepositoryTestSuite) TestList() {
	_, err := s.repo.Save(s.ctx, backgrounds.SaveInput{Background: s.testBackground("background_acolyte", "Acolyte")})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, backgrounds.SaveInput{Background: s.testBackground("background_sage", "Sage")})
	s.Require().NoError(err)

	listOut, err := s.repo.List(s.ctx, backgrounds.ListInput{})
	s.Require().NoError(err)
	s.Len(listOut.Backgrounds, 2)
}

func (s *RedisRepositoryTestSuite) TestValidationErrors() {
	_, err := s.repo.Save(s.ctx, backgrounds.SaveInput{Background: nil})
	s.Error(err)

	_, err = s.repo.Get(s.ctx, backgrounds.GetInput{ID: ""})
	s.Error(err)

	_, err = s.repo.Delete(s.ctx, backgrounds.DeleteInput{ID: "background_missing"})
	s.Error(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
