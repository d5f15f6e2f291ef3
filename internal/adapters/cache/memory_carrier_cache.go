// Package cache provides CarrierCache implementations: in-process LRU,
// Redis, SQLite and Postgres. All of them hand out profile clones so the
// cached copy stays authoritative, and none of them evict on staleness —
// freshness is always the reader's judgment.
package cache

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"freight-match-service/internal/domain"
)

// In-process carrier profile cache bounded by entry count. The LRU bound
// protects memory; it is not a staleness policy.
type MemoryCarrierCache struct {
	entries *lru.Cache[string, *domain.CarrierProfile]
}

func NewMemoryCarrierCache(maxEntries int) (*MemoryCarrierCache, error) {
	entries, err := lru.New[string, *domain.CarrierProfile](maxEntries)
	if err != nil {
		return nil, err
	}
	return &MemoryCarrierCache{entries: entries}, nil
}

func (c *MemoryCarrierCache) Get(_ context.Context, mcNumber string) (*domain.CarrierProfile, bool, error) {
	profile, ok := c.entries.Get(strings.TrimSpace(mcNumber))
	if !ok {
		return nil, false, nil
	}
	return profile.Clone(), true, nil
}

func (c *MemoryCarrierCache) Put(_ context.Context, profile *domain.CarrierProfile) error {
	if profile == nil || strings.TrimSpace(profile.MCNumber) == "" {
		return errors.New("carrier cache: profile must have an MC number")
	}
	c.entries.Add(profile.MCNumber, profile.Clone())
	return nil
}
