package classes

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
	classKeyPrefix = "class:"
	classIndexKey  = "class:index"

	errClassNil     = "class cannot be nil"
	errClassIDEmpty = "class ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis class repository.
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

// NewRedis creates a new Redis-backed class repository
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
		return nil, errors.InvalidArgument(errClassIDEmpty)
	}

	key := classKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("class with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get class")
	}

	var class codex.Class
	if err := json.Unmarshal([]byte(result), &class); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal class data")
	}

	return &GetOutput{Class: &class}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, classIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get class index")
	}

	slog.DebugContext(ctx, "listing classes from index",
		"index_key", classIndexKey,
		"count", len(ids))

	classes := make([]*codex.Class, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// If the document is gone, clean up the index
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "class not found, cleaning up index",
					"class_id", id)
				r.client.SRem(ctx, classIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get class %s", id)
		}
		classes = append(classes, getOutput.Class)
	}

	return &ListOutput{Classes: classes}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Class == nil {
		return nil, errors.InvalidArgument(errClassNil)
	}
	if input.Class.ID == "" {
		return nil, errors.InvalidArgument(errClassIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Class.CreatedAt == 0 {
		input.Class.CreatedAt = now
	}
	input.Class.UpdatedAt = now

	data, err := json.Marshal(input.Class)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal class data")
	}

	key := classKeyPrefix + input.Class.ID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0) // No TTL for authored content
	pipe.SAdd(ctx, classIndexKey, input.Class.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save class")
	}

	return &SaveOutput{Class: input.Class}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errClassIDEmpty)
	}

	// Verify it exists so deletes of unknown IDs surface as not found
	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, classKeyPrefix+input.ID)
	pipe.SRem(ctx, classIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete class")
	}

	return &DeleteOutput{}, nil
}
