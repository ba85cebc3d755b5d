package dungeonlayout

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
)

const (
	// Key pattern: dungeon_layout:{id}
	layoutKeyPrefix = "dungeon_layout:"
	// Sorted set of layout IDs scored by save time
	layoutIndexKey = "dungeon_layout_index"

	errInputNil   = "input is required"
	errLayoutNil  = "layout is required"
	errIDEmpty    = "layout ID is required"
	errNegTTL     = "ttl must not be negative"
	errNegLimit   = "limit must not be negative"
	errNotFoundFm = "dungeon layout %s not found"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis backed layout repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Layout == nil {
		return nil, errors.InvalidArgument(errLayoutNil)
	}
	if input.Layout.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.TTL < 0 {
		return nil, errors.InvalidArgument(errNegTTL)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	layout := *input.Layout
	if layout.CreatedAt.IsZero() {
		layout.CreatedAt = now
	}
	layout.UpdatedAt = now
	layout.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&layout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal layout")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, layoutKey(layout.ID), data, ttl)
	pipe.ZAdd(ctx, layoutIndexKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: layout.ID,
	})

	// Execute transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store layout in Redis")
	}

	return &SaveOutput{Layout: &layout}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := layoutKey(input.ID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errNotFoundFm, input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get layout from Redis")
	}

	var layout entities.DungeonLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal layout")
	}

	if r.clock.Now().After(layout.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		_ = r.client.ZRem(ctx, layoutIndexKey, input.ID)
		return nil, errors.NotFoundf(errNotFoundFm, input.ID)
	}

	return &GetOutput{Layout: &layout}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, layoutKey(input.ID))
	pipe.ZRem(ctx, layoutIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete layout from Redis")
	}

	if del.Val() == 0 {
		return nil, errors.NotFoundf(errNotFoundFm, input.ID)
	}

	return &DeleteOutput{Deleted: true}, nil
}

// List walks the index newest first and drops IDs whose key has expired.
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument(errNegLimit)
	}

	ids, err := r.client.ZRevRange(ctx, layoutIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read layout index")
	}
	if len(ids) == 0 {
		return &ListOutput{IDs: []string{}}, nil
	}

	pipe := r.client.Pipeline()
	exists := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		exists[i] = pipe.Exists(ctx, layoutKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to check layout keys")
	}

	live := make([]string, 0, len(ids))
	var stale []any
	for i, id := range ids {
		if exists[i].Val() == 0 {
			stale = append(stale, id)
			continue
		}
		live = append(live, id)
	}

	if len(stale) > 0 {
		// Best effort; the next List retries.
		_ = r.client.ZRem(ctx, layoutIndexKey, stale...)
	}

	if input.Limit > 0 && len(live) > input.Limit {
		live = live[:input.Limit]
	}

	return &ListOutput{IDs: live}, nil
}

func layoutKey(id string) string {
	return fmt.Sprintf("%s%s", layoutKeyPrefix, id)
}
