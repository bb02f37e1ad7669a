package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"zero-waste-meals/internal/config"
	"zero-waste-meals/internal/model"
)

const topFoodsKey = "foods:top"

// ListingCache caches the public top-quantity listing. Cache failures are
// never surfaced to callers; a broken cache behaves like a cold one.
type ListingCache interface {
	// GetTop returns the cached top listing and whether it was present.
	GetTop(ctx context.Context) ([]model.Food, bool)

	// SetTop stores the top listing.
	SetTop(ctx context.Context, foods []model.Food)

	// Invalidate drops the cached listing after a write to the food store.
	Invalidate(ctx context.Context)
}

// redisCache implements ListingCache on Redis with a short TTL.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisCache connects to Redis and returns a ListingCache backed by it.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		logger: logger.With().Str("cache", "redis").Logger(),
	}, nil
}

func (c *redisCache) GetTop(ctx context.Context) ([]model.Food, bool) {
	payload, err := c.client.Get(ctx, topFoodsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("cache read failed")
		}
		return nil, false
	}

	var foods []model.Food
	if err := json.Unmarshal(payload, &foods); err != nil {
		c.logger.Warn().Err(err).Msg("cache payload corrupt, dropping key")
		c.client.Del(ctx, topFoodsKey)
		return nil, false
	}

	return foods, true
}

func (c *redisCache) SetTop(ctx context.Context, foods []model.Food) {
	payload, err := json.Marshal(foods)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode listing for cache")
		return
	}

	if err := c.client.Set(ctx, topFoodsKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}

func (c *redisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, topFoodsKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache invalidation failed")
	}
}

// noopCache satisfies ListingCache without caching anything. Used when
// Redis is disabled or unreachable.
type noopCache struct{}

// NewNoopCache returns a ListingCache that always misses.
func NewNoopCache() ListingCache {
	return noopCache{}
}

func (noopCache) GetTop(ctx context.Context) ([]model.Food, bool) { return nil, false }

func (noopCache) SetTop(ctx context.Context, foods []model.Food) {}

func (noopCache) Invalidate(ctx context.Context) {}
