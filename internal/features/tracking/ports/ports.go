package ports

import (
	"context"
	"errors"

	"price-tracker/internal/features/tracking/domain"
)

var (
	// ErrNoObservations is returned by GetLatest when an item has no recorded
	// prices yet. Any other error means the read itself failed and must not
	// be treated as a first observation.
	ErrNoObservations = errors.New("no observations recorded")
	// ErrItemNotFound is returned when an item id is not in the catalog.
	ErrItemNotFound = errors.New("tracked item not found")
)

// PriceFetcher defines the interface for source-specific price retrieval implementations.
type PriceFetcher interface {
	// FetchCurrentPrice retrieves the current price for the item from its source.
	// It performs at most one logical fetch and never retries.
	FetchCurrentPrice(ctx context.Context, item domain.TrackedItem) (float64, error)
	// DisplayName returns the human-readable name used when the item has none.
	DisplayName(item domain.TrackedItem) string
	// SupportsSource returns true if this fetcher handles the given source type.
	SupportsSource(source domain.SourceType) bool
}

// PriceStore defines the secondary port for item and price history storage.
type PriceStore interface {
	// GetLatest returns the most recently appended observation for the item,
	// or ErrNoObservations when none exists.
	GetLatest(ctx context.Context, itemID string) (*domain.PriceObservation, error)
	// Append records a new observation. Existing observations are never modified.
	Append(ctx context.Context, obs domain.PriceObservation) error
	// History returns up to limit observations for the item, newest first.
	History(ctx context.Context, itemID string, limit int) ([]domain.PriceObservation, error)

	// SaveItem creates or replaces a tracked item definition.
	SaveItem(ctx context.Context, item *domain.TrackedItem) error
	// GetItem returns the item with the given id, or ErrItemNotFound.
	GetItem(ctx context.Context, id string) (*domain.TrackedItem, error)
	// ListItems returns items filtered by source and status. Empty filters match all.
	ListItems(ctx context.Context, source domain.SourceType, status domain.ItemStatus) ([]domain.TrackedItem, error)
	// ListActive returns active items, optionally filtered by source.
	ListActive(ctx context.Context, source domain.SourceType) ([]domain.TrackedItem, error)
	// SetItemStatus flips an item between active and inactive.
	SetItemStatus(ctx context.Context, id string, status domain.ItemStatus) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error
	// Close closes the store connection.
	Close() error
}

// Notifier defines the interface for delivering price alerts.
type Notifier interface {
	// Send delivers a message. The routing key groups alerts per tracked item.
	Send(ctx context.Context, message, routingKey string) error
}
