package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"freight-match-service/internal/domain"
)

const redisKeyPrefix = "carrier:"

// Redis-backed carrier profile cache. Profiles are stored as JSON without a
// key TTL: staleness stays a read-time judgment, the same as every other
// backend, and entries survive until overwritten.
type RedisCarrierCache struct {
	client *redis.Client
}

func NewRedisCarrierCache(client *redis.Client) *RedisCarrierCache {
	return &RedisCarrierCache{client: client}
}

func (c *RedisCarrierCache) Get(ctx context.Context, mcNumber string) (*domain.CarrierProfile, bool, error) {
	if c.client == nil {
		return nil, false, errors.New("carrier cache: redis client is nil")
	}

	payload, err := c.client.Get(ctx, redisKeyPrefix+strings.TrimSpace(mcNumber)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: %w", mcNumber, err)
	}

	var profile domain.CarrierProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, false, fmt.Errorf("get carrier cache mc=%s: decode payload: %w", mcNumber, err)
	}

	return &profile, true, nil
}

func (c *RedisCarrierCache) Put(ctx context.Context, profile *domain.CarrierProfile) error {
	if c.client == nil {
		return errors.New("carrier cache: redis client is nil")
	}
	if profile == nil || strings.TrimSpace(profile.MCNumber) == "" {
		return errors.New("carrier cache: profile must have an MC number")
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("put carrier cache mc=%s: encode payload: %w", profile.MCNumber, err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+profile.MCNumber, payload, 0).Err(); err != nil {
		return fmt.Errorf("put carrier cache mc=%s: %w", profile.MCNumber, err)
	}

	return nil
}
