package campaigns_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      campaigns.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, client := testutils.CreateTestRedis(s.T())
	s.miniRedis = mr

	repo, err := campaigns.NewRedis(&campaigns.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) testCampaign(id, code string) *codex.Campaign {
	return &codex.Campaign{
		ID:                id,
		Name:              "Curse of the Crimson Keep",
		Description:       "A weekly home game.",
		InviteCode:        code,
		DiscordWebhookURL: "https://discord.com/api/webhooks/123/abc",
		MaxPlayers:        5,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveGetDeleteLifecycle() {
	campaign := s.testCampaign("campaign_001", "CRIMSON")

	_, err := s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: campaign})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, campaigns.GetInput{ID: "campaign_001"})
	s.Require().NoError(err)
	s.Equal("Curse of the Crimson Keep", getOut.Campaign.Name)

	byCode, err := s.repo.GetByInviteCode(s.ctx, campaigns.GetByInviteCodeInput{InviteCode: "CRIMSON"})
	s.Require().NoError(err)
	s.Equal("campaign_001", byCode.Campaign.ID)

	_, err = s.repo.Delete(s.ctx, campaigns.DeleteInput{ID: "campaign_001"})
	s.Require().NoError(err)

	// Invite mapping goes with the campaign
	_, err = s.repo.GetByInviteCode(s.ctx, campaigns.GetByInviteCodeInput{InviteCode: "CRIMSON"})
	s.Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *RedisRepositoryTestSuite) TestInviteCodeUniqueness() {
	_, err := s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: s.testCampaign("campaign_001", "CRIMSON")})
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: s.testCampaign("campaign_002", "CRIMSON")})
	s.Error(err)
	s.Contains(err.Error(), "already in use")

	// Re-saving the owner with its own code is fine
	_, err = s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: s.testCampaign("campaign_001", "CRIMSON")})
	s.NoError(err)
}

func (s *RedisRepositoryTestSuite) TestInviteCodeChangeRetiresOldMapping() {
	campaign := s.testCampaign("campaign_001", "CRIMSON")
	_, err := s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: campaign})
	s.Require().NoError(err)

	campaign.InviteCode = "KEEP2026"
	_, err = s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: campaign})
	s.Require().NoError(err)

	_, err = s.repo.GetByInviteCode(s.ctx, campaigns.GetByInviteCodeInput{InviteCode: "CRIMSON"})
	s.Error(err)

	byCode, err := s.repo.GetByInviteCode(s.ctx, campaigns.GetByInviteCodeInput{InviteCode: "KEEP2026"})
	s.Require().NoError(err)
	s.Equal("campaign_001", byCode.Campaign.ID)
}

func (s *RedisRepositoryTestSuite) TestList() {
	_, err := s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: s.testCampaign("campaign_001", "AAAA")})
	s.Require().NoError(err)
	_, err = s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: s.testCampaign("campaign_002", "BBBB")})
	s.Require().NoError(err)

	listOut, err := s.repo.List(s.ctx, campaigns.ListInput{})
	s.Require().NoError(err)
	s.Len(listOut.Campaigns, 2)
}

func (s *RedisRepositoryTestSuite) TestValidationErrors() {
	_, err := s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: nil})
	s.Error(err)

	_, err = s.repo.Save(s.ctx, campaigns.SaveInput{Campaign: &codex.Campaign{ID: "campaign_001"}})
	s.Error(err, "missing invite code must be rejected")

	_, err = s.repo.GetByInviteCode(s.ctx, campaigns.GetByInviteCodeInput{})
	s.Error(err)
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
