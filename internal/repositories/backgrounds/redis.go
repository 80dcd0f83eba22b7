package backgrounds

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
	backgroundKeyPrefix = "background:"
	backgroundIndexKey  = "background:index"

	errBackgroundNil     = "background cannot be nil"
	errBackgroundIDEmpty = "background ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis background repository.
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

// NewRedis creates a new Redis-backed background repository
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
		return nil, errors.InvalidArgument(errBackgroundIDEmpty)
	}

	result, err := r.client.Get(ctx, backgroundKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("background with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get background")
	}

	var background codex.Background
	if err := json.Unmarshal([]byte(result), &background); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal background data")
	}

	return &GetOutput{Background: &background}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, backgroundIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get background index")
	}

	backgrounds := make([]*codex.Background, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "background not found, cleaning up index",
					"background_id", id)
				r.client.SRem(ctx, backgroundIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get background %s", id)
		}
		backgrounds = append(backgrounds, getOutput.Background)
	}

	return &ListOutput{Backgrounds: backgrounds}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Background == nil {
		return nil, errors.InvalidArgument(errBackgroundNil)
	}
	if input.Background.ID == "" {
		return nil, errors.InvalidArgument(errBackgroundIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Background.CreatedAt == 0 {
		input.Background.CreatedAt = now
	}
	input.Background.UpdatedAt = now

	data, err := json.Marshal(input.Background)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal background data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, backgroundKeyPrefix+input.Background.ID, data, 0)
	pipe.SAdd(ctx, backgroundIndexKey, input.Background.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save background")
	}

	return &SaveOutput{Background: input.Background}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBackgroundIDEmpty)
	}

	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, backgroundKeyPrefix+input.ID)
	pipe.SRem(ctx, backgroundIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete background")
	}

	return &DeleteOutput{}, nil
}
