package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"price-tracker/internal/core/cache"
	"price-tracker/internal/features/runs/domain"
)

const latestRunCacheKey = "latest_tracking_run"

// RedisRunRepository implements ports.RunRepository on the cache adaptation.
type RedisRunRepository struct {
	cache cache.Cache
}

// NewRedisRunRepository creates a new RedisRunRepository.
func NewRedisRunRepository(c cache.Cache) *RedisRunRepository {
	return &RedisRunRepository{
		cache: c,
	}
}

// SaveLatest stores the report, replacing the previous one.
func (r *RedisRunRepository) SaveLatest(ctx context.Context, report *domain.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	// No TTL: the report lives until the next run replaces it or it is cleared.
	if err := r.cache.Set(ctx, latestRunCacheKey, data, 0); err != nil {
		return fmt.Errorf("failed to save run report to cache: %w", err)
	}

	return nil
}

// Latest retrieves the stored report. Returns nil, nil when no run has
// completed yet.
func (r *RedisRunRepository) Latest(ctx context.Context) (*domain.RunReport, error) {
	data, err := r.cache.Get(ctx, latestRunCacheKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run report from cache: %w", err)
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run report: %w", err)
	}

	return &report, nil
}

// ClearLatest removes the stored report.
func (r *RedisRunRepository) ClearLatest(ctx context.Context) error {
	if err := r.cache.Delete(ctx, latestRunCacheKey); err != nil {
		return fmt.Errorf("failed to delete run report from cache: %w", err)
	}
	return nil
}
