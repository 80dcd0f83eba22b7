package races

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
	raceKeyPrefix = "race:"
	raceIndexKey  = "race:index"

	errRaceNil     = "race cannot be nil"
	errRaceIDEmpty = "race ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis race repository.
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

// NewRedis creates a new Redis-backed race repository
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
		return nil, errors.InvalidArgument(errRaceIDEmpty)
	}

	result, err := r.client.Get(ctx, raceKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("race with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get race")
	}

	var race codex.Race
	if err := json.Unmarshal([]byte(result), &race); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal race data")
	}

	return &GetOutput{Race: &race}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, raceIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get race index")
	}

	races := make([]*codex.Race, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "race not found, cleaning up index",
					"race_id", id)
				r.client.SRem(ctx, raceIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get race %s", id)
		}
		races = append(races, getOutput.Race)
	}

	return &ListOutput{Races: races}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Race == nil {
		return nil, errors.InvalidArgument(errRaceNil)
	}
	if input.Race.ID == "" {
		return nil, errors.InvalidArgument(errRaceIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Race.CreatedAt == 0 {
		input.Race.CreatedAt = now
	}
	input.Race.UpdatedAt = now

	data, err := json.Marshal(input.Race)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal race data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, raceKeyPrefix+input.Race.ID, data, 0)
	pipe.SAdd(ctx, raceIndexKey, input.Race.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save race")
	}

	return &SaveOutput{Race: input.Race}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRaceIDEmpty)
	}

	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, raceKeyPrefix+input.ID)
	pipe.SRem(ctx, raceIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete race")
	}

	return &DeleteOutput{}, nil
}
