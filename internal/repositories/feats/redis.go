package feats

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
	featKeyPrefix = "feat:"
	featIndexKey  = "feat:index"

	errFeatNil     = "feat cannot be nil"
	errFeatIDEmpty = "feat ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis feat repository.
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

// NewRedis creates a new Redis-backed feat repository
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
		return nil, errors.InvalidArgument(errFeatIDEmpty)
	}

	result, err := r.client.Get(ctx, featKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("feat with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get feat")
	}

	var feat codex.Feat
	if err := json.Unmarshal([]byte(result), &feat); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal feat data")
	}

	return &GetOutput{Feat: &feat}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, featIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get feat index")
	}

	feats := make([]*codex.Feat, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "feat not found, cleaning up index",
					"feat_id", id)
				r.client.SRem(ctx, featIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get feat %s", id)
		}
		feats = append(feats, getOutput.Feat)
	}

	return &ListOutput{Feats: feats}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Feat == nil {
		return nil, errors.InvalidArgument(errFeatNil)
	}
	if input.Feat.ID == "" {
		return nil, errors.InvalidArgument(errFeatIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Feat.CreatedAt == 0 {
		input.Feat.CreatedAt = now
	}
	input.Feat.UpdatedAt = now

	data, err := json.Marshal(input.Feat)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal feat data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, featKeyPrefix+input.Feat.ID, data, 0)
	pipe.SAdd(ctx, featIndexKey, input.Feat.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save feat")
	}

	return &SaveOutput{Feat: input.Feat}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errFeatIDEmpty)
	}

	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, featKeyPrefix+input.ID)
	pipe.SRem(ctx, featIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete feat")
	}

	return &DeleteOutput{}, nil
}
