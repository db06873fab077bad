package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"price-tracker/internal/core/httpclient"
	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/tracking/domain"

	"go.uber.org/zap"
)

// shopeePriceDivisor converts Shopee's integer price representation to VND.
const shopeePriceDivisor = 100000

// ShopeeFetcher reads product prices from the Shopee item API.
type ShopeeFetcher struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewShopeeFetcher creates a new ShopeeFetcher with the given base URL.
func NewShopeeFetcher(baseURL string) *ShopeeFetcher {
	return &ShopeeFetcher{
		baseURL: baseURL,
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
	}
}

// shopeeItemResponse represents the JSON structure returned by the item API.
type shopeeItemResponse struct {
	Error    int    `json:"error"`
	ErrorMsg string `json:"error_msg"`
	Data     struct {
		Name     string `json:"name"`
		Price    int64  `json:"price"`
		PriceMin int64  `json:"price_min"`
		PriceMax int64  `json:"price_max"`
	} `json:"data"`
}

// FetchCurrentPrice retrieves the current price for a Shopee item.
// Items with variant price ranges report the lowest variant price.
func (f *ShopeeFetcher) FetchCurrentPrice(ctx context.Context, item domain.TrackedItem) (float64, error) {
	itemID := item.ConfigValue("item_id", "")
	shopID := item.ConfigValue("shop_id", "")
	base := item.ConfigValue("base_url", f.baseURL)

	url := fmt.Sprintf("%s/api/v4/item/get?itemid=%s&shopid=%s", base, itemID, shopID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create shopee request: %w", err)
	}

	// The item API rejects clients that do not look like the web storefront.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", fmt.Sprintf("%s/product/%s/%s", base, shopID, itemID))
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("shopee request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("shopee API returned status %d", resp.StatusCode)
	}

	var itemResp shopeeItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&itemResp); err != nil {
		return 0, fmt.Errorf("failed to parse shopee response: %w", err)
	}

	if itemResp.Error != 0 {
		return 0, fmt.Errorf("shopee API error %d: %s", itemResp.Error, itemResp.ErrorMsg)
	}

	raw := itemResp.Data.Price
	if itemResp.Data.PriceMin > 0 && itemResp.Data.PriceMin != itemResp.Data.PriceMax {
		// Variant items expose a price range. Track the cheapest variant.
		raw = itemResp.Data.PriceMin
	}

	if raw <= 0 {
		return 0, fmt.Errorf("shopee API returned no price for item %s", itemID)
	}

	price := float64(raw) / shopeePriceDivisor

	f.logger.Debug("Shopee price fetched",
		zap.String("item_id", itemID),
		zap.String("shop_id", shopID),
		zap.Float64("price", price),
	)

	return price, nil
}

// DisplayName returns the configured product name or a generic fallback.
func (f *ShopeeFetcher) DisplayName(item domain.TrackedItem) string {
	return item.ConfigValue("product_name", "Shopee Product "+item.ConfigValue("item_id", ""))
}

// SupportsSource returns true for the shopee source type.
func (f *ShopeeFetcher) SupportsSource(source domain.SourceType) bool {
	return source == domain.SourceTypeShopee
}
