package codex_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	orchestrator "github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
	backgroundrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/backgrounds"
	campaignrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/campaigns"
	classrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/classes"
	featrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/feats"
	racerepo "github.com/KirkDiggler/rpg-codex/internal/repositories/races"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
	"github.com/KirkDiggler/rpg-codex/internal/types/proficiency"
	"github.com/KirkDiggler/rpg-codex/internal/types/racefeature"
)

// stubCatalog serves canned catalog data
type stubCatalog struct {
	spells []*catalog.SpellData
	err    error
}

func (s *stubCatalog) ListSpells(_ context.Context, _ *catalog.ListSpellsInput) ([]*catalog.SpellData, error) {
	return s.spells, s.err
}

func (s *stubCatalog) GetSpell(_ context.Context, key string) (*catalog.SpellData, error) {
	for _, spell := range s.spells {
		if spell.Key == key {
			return spell, nil
		}
	}
	return nil, errors.NotFoundf("spell %s not found", key)
}

func (s *stubCatalog) ListEquipment(_ context.Context) ([]*catalog.Reference, error) {
	return []*catalog.Reference{{Key: "longsword", Name: "Longsword"}}, s.err
}

func (s *stubCatalog) ListEquipmentCategory(_ context.Context, category string) ([]*catalog.Reference, error) {
	return []*catalog.Reference{{Key: "battleaxe", Name: "Battleaxe"}}, s.err
}

func (s *stubCatalog) GetProficiency(_ context.Context, key string) (*catalog.Reference, error) {
	return &catalog.Reference{Key: key, Name: key}, s.err
}

func (s *stubCatalog) ListClasses(_ context.Context) ([]*catalog.Reference, error) {
	return []*catalog.Reference{{Key: "wizard", Name: "Wizard"}}, s.err
}

func (s *stubCatalog) ListRaces(_ context.Context) ([]*catalog.Reference, error) {
	return []*catalog.Reference{{Key: "elf", Name: "Elf"}}, s.err
}

// stubWebhook records deliveries
type stubWebhook struct {
	sent []string
	err  error
}

func (s *stubWebhook) Send(_ context.Context, webhookURL, content string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, content)
	return nil
}

func (s *stubWebhook) SendTest(ctx context.Context, webhookURL, campaignName string) error {
	return s.Send(ctx, webhookURL, "test: "+campaignName)
}

type OrchestratorTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	webhook   *stubWebhook
	catalog   *stubCatalog
	orch      *orchestrator.Orchestrator
	ctx       context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	mr, client := testutils.CreateTestRedis(s.T())
	s.miniRedis = mr

	classes, err := classrepo.NewRedis(&classrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	races, err := racerepo.NewRedis(&racerepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	backgrounds, err := backgroundrepo.NewRedis(&backgroundrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	feats, err := featrepo.NewRedis(&featrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	campaigns, err := campaignrepo.NewRedis(&campaignrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	s.webhook = &stubWebhook{}
	s.catalog = &stubCatalog{
		spells: []*catalog.SpellData{
			{Key: "fire-bolt", Name: "Fire Bolt", Level: 0, School: "evocation"},
			{Key: "shield", Name: "Shield", Level: 1, School: "abjuration"},
		},
	}

	orch, err := orchestrator.New(&orchestrator.Config{
		ClassRepo:      classes,
		RaceRepo:       races,
		BackgroundRepo: backgrounds,
		FeatRepo:       feats,
		CampaignRepo:   campaigns,
		Catalog:        s.catalog,
		Webhook:        s.webhook,
		IDGenerator:    idgen.NewSequential("test"),
	})
	s.Require().NoError(err)
	s.orch = orch

	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) validClass() *codex.Class {
	bardic := features.New("", features.TypeSlots)
	bardic.Title = "Bardic Inspiration"
	bardic.EnabledAtLevel = 1
	bardic.Config.(*features.SlotsConfig).UsesFormula = "charisma_modifier"

	return &codex.Class{
		Name:           "Bard",
		Description:    "A magical performer.",
		HitDie:         8,
		PrimaryAbility: "charisma",
		SavingThrows:   []string{"dexterity", "charisma"},
		Features:       []features.FeatureSkill{*bardic},
	}
}

func (s *OrchestratorTestSuite) TestSaveClassMintsIDs() {
	out, err := s.orch.SaveClass(s.ctx, &codexsvc.SaveClassInput{Class: s.validClass()})
	s.Require().NoError(err)
	s.NotEmpty(out.Class.ID)
	s.Contains(out.Class.ID, "class_")
	s.NotEmpty(out.Class.Features[0].ID)
	s.NotZero(out.Class.CreatedAt)

	getOut, err := s.orch.GetClass(s.ctx, &codexsvc.GetClassInput{ClassID: out.Class.ID})
	s.Require().NoError(err)
	s.Equal("Bard", getOut.Class.Name)
}

func (s *OrchestratorTestSuite) TestSaveClassBlocksOnInvalidFeature() {
	class := s.validClass()
	class.Features[0].Title = ""

	_, err := s.orch.SaveClass(s.ctx, &codexsvc.SaveClassInput{Class: class})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Title is required.")

	// Nothing persisted
	listOut, listErr := s.orch.ListClasses(s.ctx, &codexsvc.ListClassesInput{})
	s.Require().NoError(listErr)
	s.Empty(listOut.Classes)
}

func (s *OrchestratorTestSuite) TestSaveClassRejectsBadHitDie() {
	class := s.validClass()
	class.HitDie = 7

	_, err := s.orch.SaveClass(s.ctx, &codexsvc.SaveClassInput{Class: class})
	s.Require().Error(err)
	s.Contains(err.Error(), "hitDie")
}

func (s *OrchestratorTestSuite) TestSaveClassRejectsUnknownSubclassReference() {
	class := s.validClass()
	class.Subclasses = []codex.Subclass{{ID: "subclass_lore", Name: "College of Lore"}}
	class.Features[0].EnabledBySubclass = "subclass_valor"

	_, err := s.orch.SaveClass(s.ctx, &codexsvc.SaveClassInput{Class: class})
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown subclass")
}

func (s *OrchestratorTestSuite) TestSaveRaceTrimsFeatures() {
	race := &codex.Race{
		Name:        "Elf",
		Description: "Graceful and long-lived.",
		Speed:       30,
		Size:        "medium",
		Features: []racefeature.Feature{
			{
				Type:            racefeature.TypeDarkvision,
				Name:            "Darkvision",
				Description:     "See in dim light.",
				DarkvisionRange: 60,
				Weapons:         []string{"longbow"}, // stale leftover
			},
		},
	}

	out, err := s.orch.SaveRace(s.ctx, &codexsvc.SaveRaceInput{Race: race})
	s.Require().NoError(err)
	s.Contains(out.Race.ID, "race_")

	getOut, err := s.orch.GetRace(s.ctx, &codexsvc.GetRaceInput{RaceID: out.Race.ID})
	s.Require().NoError(err)
	s.Empty(getOut.Race.Features[0].Weapons, "stale fields must not persist")
	s.Equal(60, getOut.Race.Features[0].DarkvisionRange)
}

func (s *OrchestratorTestSuite) TestSaveRaceRejectsInvalidOption() {
	race := &codex.Race{
		Name:  "Elf",
		Speed: 30,
		Features: []racefeature.Feature{
			{
				Type:          racefeature.TypeChoice,
				Name:          "Lineage",
				MaxSelections: 1,
				Options: []racefeature.ChoiceOption{
					{Type: racefeature.OptionTrait, Name: "Incomplete"},
				},
			},
		},
	}

	_, err := s.orch.SaveRace(s.ctx, &codexsvc.SaveRaceInput{Race: race})
	s.Require().Error(err)
	s.Contains(err.Error(), "Option description is required.")
}

func (s *OrchestratorTestSuite) TestSaveRaceRejectsUnknownSize() {
	_, err := s.orch.SaveRace(s.ctx, &codexsvc.SaveRaceInput{
		Race: &codex.Race{Name: "Titan", Speed: 30, Size: "colossal"},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "size")
	s.Contains(err.Error(), "must be one of")
}

func (s *OrchestratorTestSuite) TestSaveBackgroundCollapsesEmptySets() {
	skills := proficiency.New()
	skills.SetFixed([]string{"insight"})

	background := &codex.Background{
		Name:   "Acolyte",
		Skills: skills,
		Tools:  proficiency.New(), // empty, should collapse to nil
	}

	out, err := s.orch.SaveBackground(s.ctx, &codexsvc.SaveBackgroundInput{Background: background})
	s.Require().NoError(err)

	getOut, err := s.orch.GetBackground(s.ctx, &codexsvc.GetBackgroundInput{BackgroundID: out.Background.ID})
	s.Require().NoError(err)
	s.NotNil(getOut.Background.Skills)
	s.Nil(getOut.Background.Tools)
	s.Nil(getOut.Background.Languages)
}

func (s *OrchestratorTestSuite) TestSaveFeatValidatesSpecialFeatures() {
	lucky := features.New("", features.TypePointsPool)
	lucky.Title = "Luck Points"
	lucky.EnabledAtLevel = 1
	lucky.Config.(*features.PointsPoolConfig).TotalFormula = "fixed:"

	feat := &codex.Feat{
		Name:            "Lucky",
		SpecialFeatures: []features.FeatureSkill{*lucky},
	}

	_, err := s.orch.SaveFeat(s.ctx, &codexsvc.SaveFeatInput{Feat: feat})
	s.Require().Error(err)

	lucky.Config.(*features.PointsPoolConfig).TotalFormula = "fixed:3"
	feat.SpecialFeatures = []features.FeatureSkill{*lucky}
	out, err := s.orch.SaveFeat(s.ctx, &codexsvc.SaveFeatInput{Feat: feat})
	s.Require().NoError(err)
	s.Contains(out.Feat.ID, "feat_")
}

func (s *OrchestratorTestSuite) TestCampaignLifecycleAndWebhook() {
	campaign := &codex.Campaign{
		Name:              "Crimson Keep",
		DiscordWebhookURL: "https://discord.com/api/webhooks/1/x",
	}

	out, err := s.orch.SaveCampaign(s.ctx, &codexsvc.SaveCampaignInput{Campaign: campaign})
	s.Require().NoError(err)
	s.Len(out.Campaign.InviteCode, 8, "invite code is minted on save")

	// Lookup by invite code
	byCode, err := s.orch.GetCampaign(s.ctx, &codexsvc.GetCampaignInput{InviteCode: out.Campaign.InviteCode})
	s.Require().NoError(err)
	s.Equal(out.Campaign.ID, byCode.Campaign.ID)

	// Webhook test delivers
	testOut, err := s.orch.TestCampaignWebhook(s.ctx, &codexsvc.TestCampaignWebhookInput{
		CampaignID: out.Campaign.ID,
	})
	s.Require().NoError(err)
	s.True(testOut.Delivered)
	s.Require().Len(s.webhook.sent, 1)
	s.Contains(s.webhook.sent[0], "Crimson Keep")
}

func (s *OrchestratorTestSuite) TestWebhookTestWithoutURL() {
	out, err := s.orch.SaveCampaign(s.ctx, &codexsvc.SaveCampaignInput{
		Campaign: &codex.Campaign{Name: "No Hook"},
	})
	s.Require().NoError(err)

	_, err = s.orch.TestCampaignWebhook(s.ctx, &codexsvc.TestCampaignWebhookInput{
		CampaignID: out.Campaign.ID,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSaveCampaignRejectsBadWebhookURL() {
	_, err := s.orch.SaveCampaign(s.ctx, &codexsvc.SaveCampaignInput{
		Campaign: &codex.Campaign{Name: "Bad Hook", DiscordWebhookURL: "ftp://nope"},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "discordWebhookUrl")
}

func (s *OrchestratorTestSuite) TestSaveCampaignRejectsBadPlayerCap() {
	for _, maxPlayers := range []int{-1, 50} {
		_, err := s.orch.SaveCampaign(s.ctx, &codexsvc.SaveCampaignInput{
			Campaign: &codex.Campaign{Name: "Big Table", MaxPlayers: maxPlayers},
		})
		s.Require().Error(err, "max players %d must be rejected", maxPlayers)
		s.Contains(err.Error(), "maxPlayers")
	}
}

func (s *OrchestratorTestSuite) TestSaveCampaignRejectsShortInviteCode() {
	_, err := s.orch.SaveCampaign(s.ctx, &codexsvc.SaveCampaignInput{
		Campaign: &codex.Campaign{Name: "Short Code", InviteCode: "AB"},
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "inviteCode")
}

func (s *OrchestratorTestSuite) TestPreviewFeature() {
	pool := features.New("feat_ki", features.TypePointsPool)
	pool.Title = "Ki"
	pool.Config.(*features.PointsPoolConfig).TotalFormula = "level + proficiency_bonus"

	out, err := s.orch.PreviewFeature(s.ctx, &codexsvc.PreviewFeatureInput{
		Feature: pool,
		Level:   5,
	})
	s.Require().NoError(err)
	s.True(out.HasValue)
	s.Equal(8, out.Value, "level 5 plus proficiency bonus 3")

	_, err = s.orch.PreviewFeature(s.ctx, &codexsvc.PreviewFeatureInput{Feature: pool, Level: 0})
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestValidateFeature() {
	f := features.New("feat_x", features.TypeSlots)
	f.Title = ""

	out, err := s.orch.ValidateFeature(s.ctx, &codexsvc.ValidateFeatureInput{Feature: f})
	s.Require().NoError(err)
	s.False(out.Result.Valid)
	s.Contains(out.Result.Errors, "Title is required.")
}

func (s *OrchestratorTestSuite) TestListFeatureOptions() {
	spellsOut, err := s.orch.ListFeatureOptions(s.ctx, &codexsvc.ListFeatureOptionsInput{Table: "spells"})
	s.Require().NoError(err)
	s.Require().Len(spellsOut.Options, 2)
	s.Equal("evocation cantrip", spellsOut.Options[0].Detail)
	s.Equal("level 1 abjuration", spellsOut.Options[1].Detail)

	equipOut, err := s.orch.ListFeatureOptions(s.ctx, &codexsvc.ListFeatureOptionsInput{
		Table:             "equipment",
		EquipmentCategory: "martial-weapons",
	})
	s.Require().NoError(err)
	s.Equal("Battleaxe", equipOut.Options[0].Name)

	_, err = s.orch.ListFeatureOptions(s.ctx, &codexsvc.ListFeatureOptionsInput{Table: "monsters"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := orchestrator.New(&orchestrator.Config{})
	s.Error(err)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
