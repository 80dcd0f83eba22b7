package feats_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/feats"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
	"github.com/KirkDiggler/rpg-codex/internal/types/proficiency"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      feats.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, client := testutils.CreateTestRedis(s.T())
	s.miniRedis = mr

	repo, err := feats.NewRedis(&feats.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) testFeat(id, name string) *codex.Feat {
	lucky := features.New("feat_lucky_points", features.TypePointsPool)
	lucky.Title = "Luck Points"
	lucky.EnabledAtLevel = 1
	lucky.Config.(*features.PointsPoolConfig).TotalFormula = "fixed:3"

	skills := proficiency.New()
	skills.SetChoiceCount(1)

	return &codex.Feat{
		ID:              id,
		Name:            name,
		Description:     "You have inexplicable luck.",
		Prerequisites:   "None",
		Skills:          skills,
		SpecialFeatures: []features.FeatureSkill{*lucky},
	}
}

func (s *RedisRepositoryTestSuite) TestSaveGetDeleteLifecycle() {
	feat := s.testFeat("feat_lucky", "Lucky")

	_, err := s.repo.Save(s.ctx, feats.SaveInput{Feat: feat})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, feats.GetInput{ID: "feat_lucky"})
	s.Require().NoError(err)
	s.Equal("Lucky", getOut.Feat.Name)

	s.Require().Len(getOut.Feat.SpecialFeatures, 1)
	pool, ok := getOut.Feat.SpecialFeatures[0].Config.(*features.PointsPoolConfig)
	s.Require().True(ok)
	s.Equal("fixed:3", pool.TotalFormula)

	_, err = s.repo.Delete(s.ctx, feats.DeleteInput{ID: "feat_lucky"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, feats.GetInput{ID: "feat_lucky"})
	s.Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *RedisRepositoryTestSuite) TestList() {
	_, err := s.repo.Save(s.ctx, feats.SaveInput{Feat: s.testFeat("feat_lucky", "Lucky")})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, feats.SaveInput{Feat: s.testFeat("feat_alert", "Alert")})
	s.Require().NoError(err)

	listOut, err := s.repo.List(s.ctx, feats.ListInput{})
	s.Require().NoError(err)
	s.Len(listOut.Feats, 2)
}

func (s *RedisRepositoryTestSuite) TestValidationErrors() {
	_, err := s.repo.Save(s.ctx, feats.SaveInput{Feat: nil})
	s.Error(err)

	_, err = s.repo.Get(s.ctx, feats.GetInput{ID: ""})
	s.Error(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
