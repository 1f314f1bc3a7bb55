package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLocationRepo struct {
	names map[string]string
	calls int
}

func (c *countingLocationRepo) GetNames(ctx context.Context, companyID string) (map[string]string, error) {
	c.calls++
	return c.names, nil
}

func TestLocationRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingLocationRepo{names: map[string]string{"loc-1": "Milano Centro"}}
	repo := NewLocationRepository(inner, rdb, time.Minute)

	names, err := repo.GetNames(context.Background(), "company-1")

	require.NoError(t, err)
	assert.Equal(t, "Milano Centro", names["loc-1"])
	assert.Equal(t, 1, inner.calls)
}

func TestLocationRepository_ReadThrough(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	companyID := uuid.NewString()
	inner := &countingLocationRepo{names: map[string]string{"loc-1": "Milano Centro", "loc-2": "Torino"}}
	repo := NewLocationRepository(inner, rdb, time.Minute).(*LocationRepository)
	t.Cleanup(func() { _ = repo.Invalidate(ctx, companyID) })

	first, err := repo.GetNames(ctx, companyID)
	require.NoError(t, err)
	second, err := repo.GetNames(ctx, companyID)
	require.NoError(t, err)

	assert.Equal(t, inner.names, first)
	assert.Equal(t, inner.names, second)
	assert.Equal(t, 1, inner.calls)

	ttl, err := rdb.TTL(ctx, locationKey(companyID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Invalidate(ctx, companyID))
	_, err = repo.GetNames(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
