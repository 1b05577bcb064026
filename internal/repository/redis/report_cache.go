package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCacheRepository stores rendered report payloads as JSON with a TTL.
// Sales data is immutable input, so expiry is the only invalidation needed.
type ReportCacheRepository struct {
	client *redis.Client
}

func NewReportCacheRepository(client *redis.Client) *ReportCacheRepository {
	return &ReportCacheRepository{
		client: client,
	}
}

func (r *ReportCacheRepository) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read report cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}

	return true, nil
}

func (r *ReportCacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}

	return nil
}
