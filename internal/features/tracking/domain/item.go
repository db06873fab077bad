package domain

import (
	"errors"
	"fmt"
	"time"
)

// SourceType identifies the external source a price is fetched from.
type SourceType string

const (
	// SourceTypeShopee tracks a product on the Shopee marketplace.
	SourceTypeShopee SourceType = "shopee"
	// SourceTypeGold tracks the daily gold sell price.
	SourceTypeGold SourceType = "gold"
	// SourceTypeAmazon tracks a product on Amazon.
	SourceTypeAmazon SourceType = "amazon"
)

// ItemStatus represents whether an item participates in batch runs.
type ItemStatus string

const (
	// ItemStatusActive marks an item as eligible for tracking runs.
	ItemStatusActive ItemStatus = "active"
	// ItemStatusInactive marks an item as paused. Its history is kept.
	ItemStatusInactive ItemStatus = "inactive"
)

var (
	// ErrInvalidItem is returned when a tracked item fails validation.
	ErrInvalidItem = errors.New("invalid tracked item")
	// ErrUnknownSource is returned for a source type with no registered fetcher.
	ErrUnknownSource = errors.New("unknown source type")
)

// TrackedItem represents a product or price point being tracked.
type TrackedItem struct {
	// ID uniquely identifies the item, by convention "<source>_<entity>".
	ID string `json:"id"`
	// Source selects which fetcher handles this item.
	Source SourceType `json:"source"`
	// Config holds source-specific settings (shop_id, product_url, ...).
	Config map[string]string `json:"config,omitempty"`
	// DisplayName is the human-readable name used in alerts.
	DisplayName string `json:"display_name,omitempty"`
	// NotificationThreshold is the fractional change that triggers an alert.
	NotificationThreshold float64 `json:"notification_threshold"`
	// Status controls whether batch runs include this item.
	Status ItemStatus `json:"status"`
	// CreatedAt is when the item was registered.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// ConfigValue returns the config entry for key, or fallback when absent or empty.
func (t TrackedItem) ConfigValue(key, fallback string) string {
	if v, ok := t.Config[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Validate checks that the item carries everything its source needs.
// It runs before any network or storage call.
func (t TrackedItem) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidItem)
	}

	switch t.Source {
	case SourceTypeShopee:
		if t.ConfigValue("shop_id", "") == "" {
			return fmt.Errorf("%w: shopee items require config key shop_id", ErrInvalidItem)
		}
		if t.ConfigValue("item_id", "") == "" {
			return fmt.Errorf("%w: shopee items require config key item_id", ErrInvalidItem)
		}
	case SourceTypeGold:
		// The gold source has a built-in default URL, nothing is required.
	case SourceTypeAmazon:
		if t.ConfigValue("product_url", "") == "" {
			return fmt.Errorf("%w: amazon items require config key product_url", ErrInvalidItem)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, string(t.Source))
	}

	if t.NotificationThreshold < 0 || t.NotificationThreshold >= 1 {
		return fmt.Errorf("%w: notification threshold must be in [0, 1)", ErrInvalidItem)
	}

	if t.Status != "" && t.Status != ItemStatusActive && t.Status != ItemStatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidItem)
	}

	return nil
}
