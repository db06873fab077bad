package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

const (
	// catalogDefaultThreshold applies to newly registered items without one.
	catalogDefaultThreshold = 0.05

	historyDefaultLimit = 20
	historyMaxLimit     = 100
)

// shopeeURLPattern accepts product URLs like
// https://shopee.vn/Apple-MacBook-Air-(2020)-M1-Chip-...-i.88201679.5873954476
// where the last two dot-separated segments are the shop id and item id.
var shopeeURLPattern = regexp.MustCompile(`^https://shopee\.vn/.*[0-9]+\.[0-9]+$`)

// amazonASINPattern extracts the ASIN from an Amazon product URL.
var amazonASINPattern = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})`)

// RegisterItemInput carries the fields needed to register a tracked item.
type RegisterItemInput struct {
	// ID is optional; when empty it is derived from the source and config.
	ID string `json:"id"`
	// Source selects the fetcher for the item.
	Source domain.SourceType `json:"source"`
	// Config holds source-specific settings. For shopee, shop_id and item_id
	// may be given directly or derived from a product_url entry.
	Config map[string]string `json:"config"`
	// DisplayName is the name used in alerts. Falls back to config product_name.
	DisplayName string `json:"display_name"`
	// NotificationThreshold <= 0 selects the catalog default.
	NotificationThreshold float64 `json:"notification_threshold"`
}

// CatalogService manages the set of tracked items. Items are registered,
// listed and toggled, never deleted; history must outlive deactivation.
type CatalogService struct {
	store  ports.PriceStore
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService backed by the given store.
func NewCatalogService(store ports.PriceStore) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger.Get(),
	}
}

// Register validates the input, derives missing fields and stores the item as active.
func (s *CatalogService) Register(ctx context.Context, input RegisterItemInput) (*domain.TrackedItem, error) {
	cfg := make(map[string]string, len(input.Config))
	for k, v := range input.Config {
		cfg[k] = v
	}

	if input.Source == domain.SourceTypeShopee {
		if err := fillShopeeIDs(cfg); err != nil {
			return nil, err
		}
	}

	threshold := input.NotificationThreshold
	if threshold <= 0 {
		threshold = catalogDefaultThreshold
	}

	id := input.ID
	if id == "" {
		derived, err := deriveItemID(input.Source, cfg)
		if err != nil {
			return nil, err
		}
		id = derived
	}

	now := time.Now()
	item := &domain.TrackedItem{
		ID:                    id,
		Source:                input.Source,
		Config:                cfg,
		DisplayName:           input.DisplayName,
		NotificationThreshold: threshold,
		Status:                domain.ItemStatusActive,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if item.DisplayName == "" {
		item.DisplayName = cfg["product_name"]
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("Tracked item registered",
		zap.String("item_id", item.ID),
		zap.String("source", string(item.Source)),
	)

	return item, nil
}

// List returns items filtered by source and status. Empty filters match all.
func (s *CatalogService) List(ctx context.Context, source domain.SourceType, status domain.ItemStatus) ([]domain.TrackedItem, error) {
	items, err := s.store.ListItems(ctx, source, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Get returns a single tracked item by id.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.TrackedItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// SetStatus activates or deactivates an item. History is always kept.
func (s *CatalogService) SetStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	if status != domain.ItemStatusActive && status != domain.ItemStatusInactive {
		return fmt.Errorf("%w: status must be active or inactive", domain.ErrInvalidItem)
	}

	if err := s.store.SetItemStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}

	s.logger.Info("Tracked item status updated",
		zap.String("item_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// History returns the item's most recent observations, newest first.
func (s *CatalogService) History(ctx context.Context, id string, limit int) ([]domain.PriceObservation, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	if _, err := s.store.GetItem(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	obs, err := s.store.History(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return obs, nil
}

// ParseShopeeURL extracts the item id and shop id from a Shopee product URL.
// The canonical form ends in "-i.<shopid>.<itemid>".
func ParseShopeeURL(productURL string) (itemID, shopID string, err error) {
	if !shopeeURLPattern.MatchString(productURL) {
		return "", "", fmt.Errorf("%w: unrecognized shopee product url", domain.ErrInvalidItem)
	}

	parts := strings.Split(productURL, ".")
	return parts[len(parts)-1], parts[len(parts)-2], nil
}

// fillShopeeIDs derives shop_id and item_id from product_url when absent.
func fillShopeeIDs(cfg map[string]string) error {
	if cfg["shop_id"] != "" && cfg["item_id"] != "" {
		return nil
	}

	productURL := cfg["product_url"]
	if productURL == "" {
		// Leave it to Validate to report the missing keys.
		return nil
	}

	itemID, shopID, err := ParseShopeeURL(productURL)
	if err != nil {
		return err
	}

	if cfg["item_id"] == "" {
		cfg["item_id"] = itemID
	}
	if cfg["shop_id"] == "" {
		cfg["shop_id"] = shopID
	}
	return nil
}

// deriveItemID builds the canonical "<source>_<entity>" id for an item.
func deriveItemID(source domain.SourceType, cfg map[string]string) (string, error) {
	switch source {
	case domain.SourceTypeShopee:
		if cfg["item_id"] == "" {
			return "", fmt.Errorf("%w: cannot derive id without item_id", domain.ErrInvalidItem)
		}
		return "shopee_" + cfg["item_id"], nil
	case domain.SourceTypeGold:
		host := "doji"
		if raw := cfg["url"]; raw != "" {
			if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
				host = strings.TrimPrefix(u.Hostname(), "www.")
				if i := strings.IndexByte(host, '.'); i > 0 {
					host = host[:i]
				}
			}
		}
		return "gold_" + host, nil
	case domain.SourceTypeAmazon:
		m := amazonASINPattern.FindStringSubmatch(cfg["product_url"])
		if m == nil {
			return "", fmt.Errorf("%w: cannot derive id from product_url, provide an explicit id", domain.ErrInvalidItem)
		}
		return "amazon_" + m[1], nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSource, string(source))
	}
}
