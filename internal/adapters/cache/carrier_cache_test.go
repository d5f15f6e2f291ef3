package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"freight-match-service/internal/adapters/repositories"
	"freight-match-service/internal/domain"
	"freight-match-service/internal/ports"
)

func sampleProfile(cachedAt time.Time) *domain.CarrierProfile {
	return &domain.CarrierProfile{
		MCNumber:              "44110",
		DOTNumber:             "80321",
		LegalName:             "KNIGHT TRANSPORTATION INC",
		StatusCode:            "A",
		AllowedToOperate:      true,
		CommonAuthority:       "A",
		ContractAuthority:     "I",
		AuthorizedForProperty: true,
		Classifications:       []string{"Authorized For Hire"},
		CargoCodes:            []int{1, 3, 15},
		InsuranceOnFile:       1000,
		InsuranceRequired:     750,
		SafetyRating:          "S",
		VerifiedAt:            cachedAt,
		CachedAt:              cachedAt,
	}
}

// Contract shared by every backend: miss before put, hit after, full-replace
// upsert, and clone isolation from caller mutations.
func runCacheContract(t *testing.T, c ports.CarrierCache) {
	t.Helper()

	ctx := context.Background()
	cachedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, ok, err := c.Get(ctx, "44110")
	require.NoError(t, err)
	assert.False(t, ok, "expected miss before put")

	original := sampleProfile(cachedAt)
	require.NoError(t, c.Put(ctx, original))

	got, ok, err := c.Get(ctx, "44110")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, original.LegalName, got.LegalName)
	assert.Equal(t, original.CargoCodes, got.CargoCodes)
	assert.True(t, got.CachedAt.Equal(cachedAt))

	// Mutating the returned profile must not touch the cached copy.
	got.CargoCodes = append(got.CargoCodes, 30)
	again, _, err := c.Get(ctx, "44110")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 15}, again.CargoCodes)

	// Put is a full replace, not a merge.
	replacement := sampleProfile(cachedAt.Add(time.Hour))
	replacement.CargoCodes = nil
	replacement.LegalName = "KNIGHT SWIFT TRANSPORTATION"
	require.NoError(t, c.Put(ctx, replacement))

	got, ok, err = c.Get(ctx, "44110")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "KNIGHT SWIFT TRANSPORTATION", got.LegalName)
	assert.Empty(t, got.CargoCodes)
	assert.True(t, got.CachedAt.Equal(cachedAt.Add(time.Hour)))
}

func TestMemoryCarrierCache(t *testing.T) {
	c, err := NewMemoryCarrierCache(64)
	require.NoError(t, err)
	runCacheContract(t, c)
}

func TestRedisCarrierCache(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	runCacheContract(t, NewRedisCarrierCache(client))
}

func TestSqliteCarrierCache(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	require.NoError(t, repositories.InitSchema(db))

	runCacheContract(t, NewSqliteCarrierCache(db))
}

func TestStalenessIsReadTimeJudgment(t *testing.T) {
	c, err := NewMemoryCarrierCache(8)
	require.NoError(t, err)

	ctx := context.Background()
	cachedAt := time.Now().Add(-48 * time.Hour)
	require.NoError(t, c.Put(ctx, sampleProfile(cachedAt)))

	// Expired entries are still served; the reader decides freshness.
	got, ok, err := c.Get(ctx, "44110")
	require.NoError(t, err)
	require.True(t, ok)

	assert.False(t, got.Fresh(time.Now(), 24*time.Hour))
	assert.True(t, got.Fresh(time.Now(), 96*time.Hour))
}
