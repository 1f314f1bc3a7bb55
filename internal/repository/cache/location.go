package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/redis/go-redis/v9"
)

const locationKeyPrefix = "timesheet:locations:"

// LocationRepository is a read-through redis cache in front of another
// timesheet.LocationRepository. Redis failures fall back to the inner repository.
type LocationRepository struct {
	inner timesheet.LocationRepository
	rdb   redis.Cmdable
	ttl   time.Duration
}

func NewLocationRepository(inner timesheet.LocationRepository, rdb redis.Cmdable, ttl time.Duration) timesheet.LocationRepository {
	return &LocationRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func locationKey(companyID string) string {
	return locationKeyPrefix + companyID
}

// GetNames implements timesheet.LocationRepository.
func (c *LocationRepository) GetNames(ctx context.Context, companyID string) (map[string]string, error) {
	key := locationKey(companyID)

	cached, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		slog.Warn("Location cache read failed", "company_id", companyID, "error", err)
	} else if len(cached) > 0 {
		return cached, nil
	}

	names, err := c.inner.GetNames(ctx, companyID)
	if err != nil {
		return nil, err
	}
	// An empty hash cannot be stored; companies without locations always miss.
	if len(names) == 0 {
		return names, nil
	}

	if err := c.store(ctx, key, names); err != nil {
		slog.Warn("Location cache write failed", "company_id", companyID, "error", err)
	}
	return names, nil
}

func (c *LocationRepository) store(ctx context.Context, key string, names map[string]string) error {
	fields := make([]any, 0, len(names)*2)
	for id, name := range names {
		fields = append(fields, id, name)
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields...)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the cached names of one company.
func (c *LocationRepository) Invalidate(ctx context.Context, companyID string) error {
	return c.rdb.Del(ctx, locationKey(companyID)).Err()
}
