package campaigns

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-codex/internal/redis"
)

const (
	campaignKeyPrefix = "campaign:"
	campaignIndexKey  = "campaign:index"
	inviteKeyPrefix   = "campaign:invite:"

	errCampaignNil     = "campaign cannot be nil"
	errCampaignIDEmpty = "campaign ID cannot be empty"
	errInviteCodeEmpty = "invite code cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis campaign repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed campaign repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	result, err := r.client.Get(ctx, campaignKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("campaign with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get campaign")
	}

	var campaign codex.Campaign
	if err := json.Unmarshal([]byte(result), &campaign); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal campaign data")
	}

	return &GetOutput{Campaign: &campaign}, nil
}

func (r *redisRepository) GetByInviteCode(
	ctx context.Context,
	input GetByInviteCodeInput,
) (*GetByInviteCodeOutput, error) {
	if input.InviteCode == "" {
		return nil, errors.InvalidArgument(errInviteCodeEmpty)
	}

	id, err := r.client.Get(ctx, inviteKeyPrefix+input.InviteCode).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no campaign with invite code %s", input.InviteCode)
		}
		return nil, errors.Wrapf(err, "failed to resolve invite code")
	}

	getOutput, err := r.Get(ctx, GetInput{ID: id})
	if err != nil {
		// Stale invite mapping pointing at a deleted campaign
		if errors.IsNotFound(err) {
			slog.WarnContext(ctx, "campaign not found, cleaning up invite mapping",
				"campaign_id", id,
				"invite_code", input.InviteCode)
			r.client.Del(ctx, inviteKeyPrefix+input.InviteCode)
			return nil, errors.NotFoundf("no campaign with invite code %s", input.InviteCode)
		}
		return nil, err
	}

	return &GetByInviteCodeOutput{Campaign: getOutput.Campaign}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, campaignIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get campaign index")
	}

	campaigns := make([]*codex.Campaign, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "campaign not found, cleaning up index",
					"campaign_id", id)
				r.client.SRem(ctx, campaignIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get campaign %s", id)
		}
		campaigns = append(campaigns, getOutput.Campaign)
	}

	return &ListOutput{Campaigns: campaigns}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Campaign == nil {
		return nil, errors.InvalidArgument(errCampaignNil)
	}
	if input.Campaign.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}
	if input.Campaign.InviteCode == "" {
		return nil, errors.InvalidArgument(errInviteCodeEmpty)
	}

	// Invite codes are unique across campaigns
	if ownerID, err := r.client.Get(ctx, inviteKeyPrefix+input.Campaign.InviteCode).Result(); err == nil {
		if ownerID != input.Campaign.ID {
			return nil, errors.AlreadyExistsf("invite code %s is already in use", input.Campaign.InviteCode)
		}
	} else if err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to check invite code")
	}

	// Retire the old invite mapping if the code changed
	var oldInvite string
	if existing, err := r.Get(ctx, GetInput{ID: input.Campaign.ID}); err == nil {
		oldInvite = existing.Campaign.InviteCode
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	now := r.clock.Now().Unix()
	if input.Campaign.CreatedAt == 0 {
		input.Campaign.CreatedAt = now
	}
	input.Campaign.UpdatedAt = now

	data, err := json.Marshal(input.Campaign)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal campaign data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, campaignKeyPrefix+input.Campaign.ID, data, 0)
	pipe.SAdd(ctx, campaignIndexKey, input.Campaign.ID)
	if oldInvite != "" && oldInvite != input.Campaign.InviteCode {
		pipe.Del(ctx, inviteKeyPrefix+oldInvite)
	}
	pipe.Set(ctx, inviteKeyPrefix+input.Campaign.InviteCode, input.Campaign.ID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save campaign")
	}

	return &SaveOutput{Campaign: input.Campaign}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCampaignIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, campaignKeyPrefix+input.ID)
	pipe.SRem(ctx, campaignIndexKey, input.ID)
	if getOutput.Campaign.InviteCode != "" {
		pipe.Del(ctx, inviteKeyPrefix+getOutput.Campaign.InviteCode)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete campaign")
	}

	return &DeleteOutput{}, nil
}
