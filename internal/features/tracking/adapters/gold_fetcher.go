package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"price-tracker/internal/core/httpclient"
	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/tracking/domain"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// goldPriceDivisor converts the listed price (thousand VND) to million VND.
const goldPriceDivisor = 1000

// GoldFetcher reads the daily gold sell price from a vendor site.
// It prefers the vendor's JSON endpoint and falls back to scraping the
// price table when the endpoint is unavailable.
type GoldFetcher struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewGoldFetcher creates a new GoldFetcher with the given vendor URL.
func NewGoldFetcher(url string) *GoldFetcher {
	return &GoldFetcher{
		url:    url,
		client: httpclient.NewClient(30 * time.Second),
		logger: logger.Get(),
	}
}

// goldPriceResponse represents the vendor's JSON price endpoint payload.
type goldPriceResponse struct {
	SellPrice float64 `json:"sell_price"`
	BuyPrice  float64 `json:"buy_price"`
}

// FetchCurrentPrice retrieves the current gold sell price in million VND.
func (f *GoldFetcher) FetchCurrentPrice(ctx context.Context, item domain.TrackedItem) (float64, error) {
	base := item.ConfigValue("url", f.url)

	price, err := f.fetchFromAPI(ctx, base)
	if err == nil {
		return price, nil
	}

	f.logger.Debug("Gold price endpoint unavailable, scraping page",
		zap.String("url", base),
		zap.Error(err),
	)

	return f.scrapePricePage(ctx, base)
}

// fetchFromAPI reads the sell price from the vendor's JSON endpoint.
func (f *GoldFetcher) fetchFromAPI(ctx context.Context, base string) (float64, error) {
	url := strings.TrimSuffix(base, "/") + "/api/gold-price"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create gold price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("gold price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gold price endpoint returned status %d", resp.StatusCode)
	}

	var priceResp goldPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return 0, fmt.Errorf("failed to parse gold price response: %w", err)
	}

	if priceResp.SellPrice <= 0 {
		return 0, fmt.Errorf("gold price endpoint returned no sell price")
	}

	return priceResp.SellPrice, nil
}

// scrapePricePage extracts the sell price from the vendor's HTML price table.
func (f *GoldFetcher) scrapePricePage(ctx context.Context, base string) (float64, error) {
	url := strings.TrimSuffix(base, "/") + "/gia-vang"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create gold page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("gold page request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gold page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse gold page: %w", err)
	}

	text := strings.TrimSpace(doc.Find(".gold-price .sell-price").First().Text())
	if text == "" {
		return 0, fmt.Errorf("sell price element not found on gold page")
	}

	price, err := parseGoldPrice(text)
	if err != nil {
		return 0, err
	}

	f.logger.Debug("Gold price scraped",
		zap.String("url", url),
		zap.Float64("price", price),
	)

	return price, nil
}

// parseGoldPrice converts a listed price like "11,637.000" to million VND.
// The page uses both comma and dot as thousand separators.
func parseGoldPrice(text string) (float64, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable gold price %q: %w", text, err)
	}

	return float64(value) / goldPriceDivisor, nil
}

// DisplayName returns the configured name or the default gold price label.
func (f *GoldFetcher) DisplayName(item domain.TrackedItem) string {
	return item.ConfigValue("product_name", "DOJI Gold Price (VND)")
}

// SupportsSource returns true for the gold source type.
func (f *GoldFetcher) SupportsSource(source domain.SourceType) bool {
	return source == domain.SourceTypeGold
}
