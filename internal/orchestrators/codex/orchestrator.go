// Package codex implements the content authoring orchestrator
package codex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-codex/internal/clients/webhook"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/formula"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
	backgroundrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/backgrounds"
	campaignrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/campaigns"
	classrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/classes"
	featrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/feats"
	racerepo "github.com/KirkDiggler/rpg-codex/internal/repositories/races"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
)

// Config holds the dependencies for the codex orchestrator
type Config struct {
	ClassRepo      classrepo.Repository
	RaceRepo       racerepo.Repository
	BackgroundRepo backgroundrepo.Repository
	FeatRepo       featrepo.Repository
	CampaignRepo   campaignrepo.Repository
	Catalog        catalog.Client
	Webhook        webhook.Client
	IDGenerator    idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ClassRepo == nil {
		vb.RequiredField("ClassRepo")
	}
	if c.RaceRepo == nil {
		vb.RequiredField("RaceRepo")
	}
	if c.BackgroundRepo == nil {
		vb.RequiredField("BackgroundRepo")
	}
	if c.FeatRepo == nil {
		vb.RequiredField("FeatRepo")
	}
	if c.CampaignRepo == nil {
		vb.RequiredField("CampaignRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Webhook == nil {
		vb.RequiredField("Webhook")
	}

	return vb.Build()
}

// Orchestrator implements the codex.Service interface
type Orchestrator struct {
	classRepo      classrepo.Repository
	raceRepo       racerepo.Repository
	backgroundRepo backgroundrepo.Repository
	featRepo       featrepo.Repository
	campaignRepo   campaignrepo.Repository
	catalog        catalog.Client
	webhook        webhook.Client
	idGenerator    idgen.Generator
}

// New creates a new codex orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("")
	}

	return &Orchestrator{
		classRepo:      cfg.ClassRepo,
		raceRepo:       cfg.RaceRepo,
		backgroundRepo: cfg.BackgroundRepo,
		featRepo:       cfg.FeatRepo,
		campaignRepo:   cfg.CampaignRepo,
		catalog:        cfg.Catalog,
		webhook:        cfg.Webhook,
		idGenerator:    gen,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ codexsvc.Service = (*Orchestrator)(nil)

func (o *Orchestrator) mintID(prefix string) string {
	return prefix + "_" + o.idGenerator.Generate()
}

// Class operations

// ListClasses returns all authored classes
func (o *Orchestrator) ListClasses(ctx context.Context, input *codexsvc.ListClassesInput) (*codexsvc.ListClassesOutput, error) {
	listOutput, err := o.classRepo.List(ctx, classrepo.ListInput{})
	if err != nil {
		return nil, err
	}
	return &codexsvc.ListClassesOutput{Classes: listOutput.Classes}, nil
}

// GetClass returns one authored class
func (o *Orchestrator) GetClass(ctx context.Context, input *codexsvc.GetClassInput) (*codexsvc.GetClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.classRepo.Get(ctx, classrepo.GetInput{ID: input.ClassID})
	if err != nil {
		return nil, err
	}
	return &codexsvc.GetClassOutput{Class: getOutput.Class}, nil
}

var validHitDice = map[int]bool{6: true, 8: true, 10: true, 12: true}

var validSizes = []string{"tiny", "small", "medium", "large", "huge", "gargantuan"}

// maxCampaignPlayers caps the configurable table size. Zero means unlimited.
const maxCampaignPlayers = 20

// SaveClass validates and stores a class. Invalid features block the save;
// there is no partial persistence.
func (o *Orchestrator) SaveClass(ctx context.Context, input *codexsvc.SaveClassInput) (*codexsvc.SaveClassOutput, error) {
	if input == nil || input.Class == nil {
		return nil, errors.InvalidArgument("class is required")
	}
	class := input.Class

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", class.Name, vb)
	if !validHitDice[class.HitDie] {
		vb.InvalidField("hitDie", "must be 6, 8, 10, or 12")
	}

	subclassIDs := make(map[string]bool, len(class.Subclasses))
	for i := range class.Subclasses {
		sc := &class.Subclasses[i]
		if sc.ID == "" {
			sc.ID = o.mintID("subclass")
		}
		if strings.TrimSpace(sc.Name) == "" {
			vb.RequiredField(fmt.Sprintf("subclasses[%d].name", i))
		}
		subclassIDs[sc.ID] = true
	}

	for i := range class.Features {
		feature := &class.Features[i]
		if feature.ID == "" {
			feature.ID = o.mintID("feature")
		}
		if feature.EnabledBySubclass != "" && !subclassIDs[feature.EnabledBySubclass] {
			vb.InvalidField(fmt.Sprintf("features[%d].enabledBySubclass", i),
				"references an unknown subclass")
		}
		result := features.Validate(feature)
		for _, msg := range result.Errors {
			vb.Field(fmt.Sprintf("features[%d]", i), msg)
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	if class.ID == "" {
		class.ID = o.mintID("class")
	}
	if class.Skills != nil {
		class.Skills = class.Skills.Collapsed()
	}

	saveOutput, err := o.classRepo.Save(ctx, classrepo.SaveInput{Class: class})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "saved class",
		"class_id", saveOutput.Class.ID,
		"feature_count", len(saveOutput.Class.Features))

	return &codexsvc.SaveClassOutput{Class: saveOutput.Class}, nil
}

// DeleteClass removes a class
func (o *Orchestrator) DeleteClass(ctx context.Context, input *codexsvc.DeleteClassInput) (*codexsvc.DeleteClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.classRepo.Delete(ctx, classrepo.DeleteInput{ID: input.ClassID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted class", "class_id", input.ClassID)
	return &codexsvc.DeleteClassOutput{}, nil
}

// Race operations

// ListRaces returns all authored races
func (o *Orchestrator) ListRaces(ctx context.Context, input *codexsvc.ListRacesInput) (*codexsvc.ListRacesOutput, error) {
	listOutput, err := o.raceRepo.List(ctx, racerepo.ListInput{})
	if err != nil {
		return nil, err
	}
	return &codexsvc.ListRacesOutput{Races: listOutput.Races}, nil
}

// GetRace returns one authored race
func (o *Orchestrator) GetRace(ctx context.Context, input *codexsvc.GetRaceInput) (*codexsvc.GetRaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.raceRepo.Get(ctx, racerepo.GetInput{ID: input.RaceID})
	if err != nil {
		return nil, err
	}
	return &codexsvc.GetRaceOutput{Race: getOutput.Race}, nil
}

// SaveRace validates, trims, and stores a race. Trimming drops fields left
// behind by feature type switches so stale values never persist.
func (o *Orchestrator) SaveRace(ctx context.Context, input *codexsvc.SaveRaceInput) (*codexsvc.SaveRaceOutput, error) {
	if input == nil || input.Race == nil {
		return nil, errors.InvalidArgument("race is required")
	}
	race := input.Race

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", race.Name, vb)
	if race.Speed <= 0 {
		vb.InvalidField("speed", "must be positive")
	}
	if race.Size != "" {
		errors.ValidateEnum("size", race.Size, validSizes, vb)
	}

	for i := range race.Features {
		for _, msg := range race.Features[i].Validate() {
			vb.Field(fmt.Sprintf("features[%d]", i), msg)
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	for i := range race.Features {
		race.Features[i] = race.Features[i].Trim()
	}
	if race.ID == "" {
		race.ID = o.mintID("race")
	}

	saveOutput, err := o.raceRepo.Save(ctx, racerepo.SaveInput{Race: race})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "saved race",
		"race_id", saveOutput.Race.ID,
		"feature_count", len(saveOutput.Race.Features))

	return &codexsvc.SaveRaceOutput{Race: saveOutput.Race}, nil
}

// DeleteRace removes a race
func (o *Orchestrator) DeleteRace(ctx context.Context, input *codexsvc.DeleteRaceInput) (*codexsvc.DeleteRaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.raceRepo.Delete(ctx, racerepo.DeleteInput{ID: input.RaceID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted race", "race_id", input.RaceID)
	return &codexsvc.DeleteRaceOutput{}, nil
}

// Background operations

// ListBackgrounds returns all authored backgrounds
func (o *Orchestrator) ListBackgrounds(ctx context.Context, input *codexsvc.ListBackgroundsInput) (*codexsvc.ListBackgroundsOutput, error) {
	listOutput, err := o.backgroundRepo.List(ctx, backgroundrepo.ListInput{})
	if err != nil {
		return nil, err
	}
	return &codexsvc.ListBackgroundsOutput{Backgrounds: listOutput.Backgrounds}, nil
}

// GetBackground returns one authored background
func (o *Orchestrator) GetBackground(ctx context.Context, input *codexsvc.GetBackgroundInput) (*codexsvc.GetBackgroundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.backgroundRepo.Get(ctx, backgroundrepo.GetInput{ID: input.BackgroundID})
	if err != nil {
		return nil, err
	}
	return &codexsvc.GetBackgroundOutput{Background: getOutput.Background}, nil
}

// SaveBackground validates and stores a background. Empty proficiency sets
// collapse to null so storage distinguishes "grants nothing" from an
// empty-but-present set.
func (o *Orchestrator) SaveBackground(ctx context.Context, input *codexsvc.SaveBackgroundInput) (*codexsvc.SaveBackgroundOutput, error) {
	if input == nil || input.Background == nil {
		return nil, errors.InvalidArgument("background is required")
	}
	background := input.Background

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", background.Name, vb)
	if background.GoldPieces < 0 {
		vb.InvalidField("goldPieces", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	background.Skills = background.Skills.Collapsed()
	background.Tools = background.Tools.Collapsed()
	background.Languages = background.Languages.Collapsed()

	if background.ID == "" {
		background.ID = o.mintID("background")
	}

	saveOutput, err := o.backgroundRepo.Save(ctx, backgroundrepo.SaveInput{Background: background})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "saved background", "background_id", saveOutput.Background.ID)
	return &codexsvc.SaveBackgroundOutput{Background: saveOutput.Background}, nil
}

// DeleteBackground removes a background
func (o *Orchestrator) DeleteBackground(ctx context.Context, input *codexsvc.DeleteBackgroundInput) (*codexsvc.DeleteBackgroundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.backgroundRepo.Delete(ctx, backgroundrepo.DeleteInput{ID: input.BackgroundID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted background", "background_id", input.BackgroundID)
	return &codexsvc.DeleteBackgroundOutput{}, nil
}

// Feat operations

// ListFeats returns all authored feats
func (o *Orchestrator) ListFeats(ctx context.Context, input *codexsvc.ListFeatsInput) (*codexsvc.ListFeatsOutput, error) {
	listOutput, err := o.featRepo.List(ctx, featrepo.ListInput{})
	if err != nil {
		return nil, err
	}
	return &codexsvc.ListFeatsOutput{Feats: listOutput.Feats}, nil
}

// GetFeat returns one authored feat
func (o *Orchestrator) GetFeat(ctx context.Context, input *codexsvc.GetFeatInput) (*codexsvc.GetFeatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.featRepo.Get(ctx, featrepo.GetInput{ID: input.FeatID})
	if err != nil {
		return nil, err
	}
	return &codexsvc.GetFeatOutput{Feat: getOutput.Feat}, nil
}

// SaveFeat validates and stores a feat
func (o *Orchestrator) SaveFeat(ctx context.Context, input *codexsvc.SaveFeatInput) (*codexsvc.SaveFeatOutput, error) {
	if input == nil || input.Feat == nil {
		return nil, errors.InvalidArgument("feat is required")
	}
	feat := input.Feat

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", feat.Name, vb)

	for i := range feat.SpecialFeatures {
		feature := &feat.SpecialFeatures[i]
		if feature.ID == "" {
			feature.ID = o.mintID("feature")
		}
		result := features.Validate(feature)
		for _, msg := range result.Errors {
			vb.Field(fmt.Sprintf("specialFeatures[%d]", i), msg)
		}
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	feat.Skills = feat.Skills.Collapsed()
	if feat.ID == "" {
		feat.ID = o.mintID("feat")
	}

	saveOutput, err := o.featRepo.Save(ctx, featrepo.SaveInput{Feat: feat})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "saved feat", "feat_id", saveOutput.Feat.ID)
	return &codexsvc.SaveFeatOutput{Feat: saveOutput.Feat}, nil
}

// DeleteFeat removes a feat
func (o *Orchestrator) DeleteFeat(ctx context.Context, input *codexsvc.DeleteFeatInput) (*codexsvc.DeleteFeatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.featRepo.Delete(ctx, featrepo.DeleteInput{ID: input.FeatID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted feat", "feat_id", input.FeatID)
	return &codexsvc.DeleteFeatOutput{}, nil
}

// Campaign operations

// ListCampaigns returns all campaigns
func (o *Orchestrator) ListCampaigns(ctx context.Context, input *codexsvc.ListCampaignsInput) (*codexsvc.ListCampaignsOutput, error) {
	listOutput, err := o.campaignRepo.List(ctx, campaignrepo.ListInput{})
	if err != nil {
		return nil, err
	}
	return &codexsvc.ListCampaignsOutput{Campaigns: listOutput.Campaigns}, nil
}

// GetCampaign returns one campaign, looked up by ID or invite code
func (o *Orchestrator) GetCampaign(ctx context.Context, input *codexsvc.GetCampaignInput) (*codexsvc.GetCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.CampaignID != "" {
		getOutput, err := o.campaignRepo.Get(ctx, campaignrepo.GetInput{ID: input.CampaignID})
		if err != nil {
			return nil, err
		}
		return &codexsvc.GetCampaignOutput{Campaign: getOutput.Campaign}, nil
	}

	if input.InviteCode != "" {
		byCode, err := o.campaignRepo.GetByInviteCode(ctx, campaignrepo.GetByInviteCodeInput{
			InviteCode: input.InviteCode,
		})
		if err != nil {
			return nil, err
		}
		return &codexsvc.GetCampaignOutput{Campaign: byCode.Campaign}, nil
	}

	return nil, errors.InvalidArgument("campaign ID or invite code is required")
}

// SaveCampaign validates and stores a campaign, minting an invite code for
// new campaigns that don't carry one
func (o *Orchestrator) SaveCampaign(ctx context.Context, input *codexsvc.SaveCampaignInput) (*codexsvc.SaveCampaignOutput, error) {
	if input == nil || input.Campaign == nil {
		return nil, errors.InvalidArgument("campaign is required")
	}
	campaign := input.Campaign

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", campaign.Name, vb)
	errors.ValidateRange("maxPlayers", campaign.MaxPlayers, 0, maxCampaignPlayers, vb)
	if campaign.InviteCode != "" {
		// Author-supplied codes must stay shareable; minted codes are 8.
		errors.ValidateMinLength("inviteCode", campaign.InviteCode, 4, vb)
	}
	if campaign.DiscordWebhookURL != "" {
		errors.ValidateHTTPURL("discordWebhookUrl", campaign.DiscordWebhookURL, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if campaign.ID == "" {
		campaign.ID = o.mintID("campaign")
	}
	if campaign.InviteCode == "" {
		campaign.InviteCode = newInviteCode()
	}

	saveOutput, err := o.campaignRepo.Save(ctx, campaignrepo.SaveInput{Campaign: campaign})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "saved campaign",
		"campaign_id", saveOutput.Campaign.ID,
		"invite_code", saveOutput.Campaign.InviteCode)

	return &codexsvc.SaveCampaignOutput{Campaign: saveOutput.Campaign}, nil
}

// DeleteCampaign removes a campaign
func (o *Orchestrator) DeleteCampaign(ctx context.Context, input *codexsvc.DeleteCampaignInput) (*codexsvc.DeleteCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.campaignRepo.Delete(ctx, campaignrepo.DeleteInput{ID: input.CampaignID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted campaign", "campaign_id", input.CampaignID)
	return &codexsvc.DeleteCampaignOutput{}, nil
}

// TestCampaignWebhook fires a canned message at the campaign's configured
// Discord webhook so a game master can verify the wiring
func (o *Orchestrator) TestCampaignWebhook(ctx context.Context, input *codexsvc.TestCampaignWebhookInput) (*codexsvc.TestCampaignWebhookOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.campaignRepo.Get(ctx, campaignrepo.GetInput{ID: input.CampaignID})
	if err != nil {
		return nil, err
	}
	campaign := getOutput.Campaign

	if campaign.DiscordWebhookURL == "" {
		return nil, errors.FailedPrecondition("campaign has no Discord webhook configured")
	}

	if err := o.webhook.SendTest(ctx, campaign.DiscordWebhookURL, campaign.Name); err != nil {
		slog.WarnContext(ctx, "webhook test failed",
			"campaign_id", campaign.ID,
			"error", err.Error())
		return nil, err
	}

	return &codexsvc.TestCampaignWebhookOutput{Delivered: true}, nil
}

// Feature authoring support

// ValidateFeature runs editor validation without persisting anything
func (o *Orchestrator) ValidateFeature(ctx context.Context, input *codexsvc.ValidateFeatureInput) (*codexsvc.ValidateFeatureOutput, error) {
	if input == nil || input.Feature == nil {
		return nil, errors.InvalidArgument("feature is required")
	}
	return &codexsvc.ValidateFeatureOutput{Result: features.Validate(input.Feature)}, nil
}

// PreviewFeature evaluates a feature's formula at a character level so the
// editor can show live derived values
func (o *Orchestrator) PreviewFeature(ctx context.Context, input *codexsvc.PreviewFeatureInput) (*codexsvc.PreviewFeatureOutput, error) {
	if input == nil || input.Feature == nil {
		return nil, errors.InvalidArgument("feature is required")
	}
	if input.Level < 1 || input.Level > 20 {
		return nil, errors.InvalidArgumentf("level must be between 1 and 20, got %d", input.Level)
	}

	fctx := &formula.Context{
		Level:            input.Level,
		ProficiencyBonus: formula.DefaultProficiencyBonus(input.Level),
	}

	value, hasValue, err := input.Feature.DerivedValue(fctx)
	if err != nil {
		return nil, err
	}

	return &codexsvc.PreviewFeatureOutput{Value: value, HasValue: hasValue}, nil
}

// ListFeatureOptions resolves an options_list feature's database table into
// concrete picker entries from the SRD catalog
func (o *Orchestrator) ListFeatureOptions(ctx context.Context, input *codexsvc.ListFeatureOptionsInput) (*codexsvc.ListFeatureOptionsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	switch input.Table {
	case "spells":
		spells, err := o.catalog.ListSpells(ctx, input.SpellCriteria)
		if err != nil {
			return nil, err
		}
		options := make([]codexsvc.FeatureOption, 0, len(spells))
		for _, spell := range spells {
			detail := fmt.Sprintf("level %d %s", spell.Level, spell.School)
			if spell.Level == 0 {
				detail = spell.School + " cantrip"
			}
			options = append(options, codexsvc.FeatureOption{
				Key:    spell.Key,
				Name:   spell.Name,
				Detail: detail,
			})
		}
		return &codexsvc.ListFeatureOptionsOutput{Options: options}, nil

	case "equipment":
		var (
			refs []*catalog.Reference
			err  error
		)
		if input.EquipmentCategory != "" {
			refs, err = o.catalog.ListEquipmentCategory(ctx, input.EquipmentCategory)
		} else {
			refs, err = o.catalog.ListEquipment(ctx)
		}
		if err != nil {
			return nil, err
		}
		options := make([]codexsvc.FeatureOption, 0, len(refs))
		for _, ref := range refs {
			options = append(options, codexsvc.FeatureOption{Key: ref.Key, Name: ref.Name})
		}
		return &codexsvc.ListFeatureOptionsOutput{Options: options}, nil

	default:
		return nil, errors.InvalidArgumentf("unknown options table %q", input.Table)
	}
}

// newInviteCode mints a short shareable code. Uniqueness is enforced by the
// repository on save.
func newInviteCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:8])
}
