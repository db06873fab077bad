package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// redisItemsKey is the hash holding all tracked item definitions.
	redisItemsKey = "tracker:items"
	// redisHistoryKeyPrefix prefixes the per-item observation lists.
	redisHistoryKeyPrefix = "tracker:history:"
)

// RedisStore implements the PriceStore port using Redis. Item definitions
// live in a single hash and each item's observations in a list in append
// order, so the latest observation is always the most recently written one
// even when two appends share a timestamp.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis price store.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	return &RedisStore{client: client}, nil
}

func historyKey(itemID string) string {
	return redisHistoryKeyPrefix + itemID
}

// GetLatest returns the most recently appended observation for the item.
func (r *RedisStore) GetLatest(ctx context.Context, itemID string) (*domain.PriceObservation, error) {
	val, err := r.client.LIndex(ctx, historyKey(itemID), -1).Result()
	if err == redis.Nil {
		return nil, ports.ErrNoObservations
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest observation for %s: %w", itemID, err)
	}

	var obs domain.PriceObservation
	if err := json.Unmarshal([]byte(val), &obs); err != nil {
		return nil, fmt.Errorf("failed to decode observation for %s: %w", itemID, err)
	}

	return &obs, nil
}

// Append records a new observation at the tail of the item's history.
func (r *RedisStore) Append(ctx context.Context, obs domain.PriceObservation) error {
	payload, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("failed to encode observation: %w", err)
	}

	if err := r.client.RPush(ctx, historyKey(obs.ItemID), payload).Err(); err != nil {
		return fmt.Errorf("failed to append observation for %s: %w", obs.ItemID, err)
	}

	return nil
}

// History returns up to limit observations for the item, newest first.
func (r *RedisStore) History(ctx context.Context, itemID string, limit int) ([]domain.PriceObservation, error) {
	if limit <= 0 {
		limit = 1
	}

	vals, err := r.client.LRange(ctx, historyKey(itemID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history for %s: %w", itemID, err)
	}

	observations := make([]domain.PriceObservation, 0, len(vals))
	for i := len(vals) - 1; i >= 0; i-- {
		var obs domain.PriceObservation
		if err := json.Unmarshal([]byte(vals[i]), &obs); err != nil {
			return nil, fmt.Errorf("failed to decode observation for %s: %w", itemID, err)
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

// SaveItem creates or replaces a tracked item definition.
func (r *RedisStore) SaveItem(ctx context.Context, item *domain.TrackedItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item %s: %w", item.ID, err)
	}
	if err := r.client.HSet(ctx, redisItemsKey, item.ID, payload).Err(); err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}

	return nil
}

// GetItem returns the item with the given id.
func (r *RedisStore) GetItem(ctx context.Context, id string) (*domain.TrackedItem, error) {
	val, err := r.client.HGet(ctx, redisItemsKey, id).Result()
	if err == redis.Nil {
		return nil, ports.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}

	var item domain.TrackedItem
	if err := json.Unmarshal([]byte(val), &item); err != nil {
		return nil, fmt.Errorf("failed to decode item %s: %w", id, err)
	}

	return &item, nil
}

// ListItems returns items filtered by source and status, oldest first.
// Empty filters match all items.
func (r *RedisStore) ListItems(ctx context.Context, source domain.SourceType, status domain.ItemStatus) ([]domain.TrackedItem, error) {
	vals, err := r.client.HGetAll(ctx, redisItemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]domain.TrackedItem, 0, len(vals))
	for id, val := range vals {
		var item domain.TrackedItem
		if err := json.Unmarshal([]byte(val), &item); err != nil {
			return nil, fmt.Errorf("failed to decode item %s: %w", id, err)
		}
		if source != "" && item.Source != source {
			continue
		}
		if status != "" && item.Status != status {
			continue
		}
		items = append(items, item)
	}

	// Hash fields come back in arbitrary order.
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// ListActive returns active items, optionally filtered by source.
func (r *RedisStore) ListActive(ctx context.Context, source domain.SourceType) ([]domain.TrackedItem, error) {
	return r.ListItems(ctx, source, domain.ItemStatusActive)
}

// SetItemStatus flips an item between active and inactive.
func (r *RedisStore) SetItemStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	item, err := r.GetItem(ctx, id)
	if err != nil {
		return err
	}

	item.Status = status
	item.UpdatedAt = time.Now().UTC()

	return r.SaveItem(ctx, item)
}

// Ping checks if Redis is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
