package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"price-tracker/internal/core/logger"
	"price-tracker/internal/core/proxy"
	"price-tracker/internal/features/tracking/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// amazonPriceSelectors are tried in order against the rendered product page.
// Amazon renders the price in different nodes depending on the listing type.
var amazonPriceSelectors = []string{
	".a-price .a-offscreen",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#corePrice_feature_div .a-offscreen",
	".a-price-whole",
}

// priceNumberPattern finds the first number with optional thousand separators.
var priceNumberPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// AmazonFetcher reads product prices from rendered Amazon product pages.
// The price nodes are populated by JavaScript, so the page is loaded in a
// headless browser before extraction.
type AmazonFetcher struct {
	proxy  proxy.Settings
	logger *zap.Logger
}

// NewAmazonFetcher creates a new AmazonFetcher with the given proxy settings.
func NewAmazonFetcher(proxySettings proxy.Settings) *AmazonFetcher {
	return &AmazonFetcher{
		proxy:  proxySettings,
		logger: logger.Get(),
	}
}

// FetchCurrentPrice loads the product page in a headless browser and extracts
// the displayed price.
func (f *AmazonFetcher) FetchCurrentPrice(ctx context.Context, item domain.TrackedItem) (float64, error) {
	productURL := item.ConfigValue("product_url", "")

	f.logger.Debug("Launching browser...",
		zap.String("product_url", productURL),
		zap.Bool("proxy_enabled", f.proxy.HasProxy()),
	)

	// Configure launcher
	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	// Chromium cannot pass proxy credentials on the command line, so
	// authenticated proxies go through a local forwarder.
	if f.proxy.HasProxy() && f.proxy.Username != "" && f.proxy.Password != "" {
		forwarder, err := proxy.NewForwardingProxy(f.proxy.FullURL())
		if err != nil {
			return 0, fmt.Errorf("failed to create proxy forwarder: %w", err)
		}
		localAddr, err := forwarder.Start(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to start proxy forwarder: %w", err)
		}
		defer forwarder.Stop()

		l = l.Proxy(localAddr)
		f.logger.Debug("Browser configured with local proxy forwarder",
			zap.String("local_addr", localAddr),
		)
	} else if f.proxy.HasProxy() {
		l = l.Proxy(f.proxy.HostPort())
		f.logger.Debug("Browser configured with proxy",
			zap.String("proxy", f.proxy.Redacted()),
		)
	}

	u, err := l.Launch()
	if err != nil {
		return 0, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return 0, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page := browser.MustPage(productURL)

	if err := page.WaitLoad(); err != nil {
		return 0, fmt.Errorf("failed to load product page: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return 0, fmt.Errorf("failed to read rendered page: %w", err)
	}

	price, err := amazonPriceFromHTML(html)
	if err != nil {
		return 0, err
	}

	f.logger.Debug("Amazon price fetched",
		zap.String("product_url", productURL),
		zap.Float64("price", price),
	)

	return price, nil
}

// amazonPriceFromHTML extracts the first price matched by the known selectors.
func amazonPriceFromHTML(html string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("failed to parse product page: %w", err)
	}

	if title := doc.Find("title").First().Text(); strings.Contains(title, "Robot Check") {
		return 0, fmt.Errorf("product page blocked by robot check")
	}

	for _, selector := range amazonPriceSelectors {
		node := doc.Find(selector).First()
		if node.Length() == 0 {
			continue
		}
		if price, ok := parsePriceText(node.Text()); ok {
			return price, nil
		}
	}

	return 0, fmt.Errorf("no price element found on product page")
}

// parsePriceText pulls the numeric value out of a rendered price string
// like "$1,079.00".
func parsePriceText(text string) (float64, bool) {
	found := priceNumberPattern.FindString(text)
	if found == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(found, ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, false
	}

	return value, true
}

// DisplayName returns the configured product name or a generic fallback.
func (f *AmazonFetcher) DisplayName(item domain.TrackedItem) string {
	return item.ConfigValue("product_name", "Amazon Product")
}

// SupportsSource returns true for the amazon source type.
func (f *AmazonFetcher) SupportsSource(source domain.SourceType) bool {
	return source == domain.SourceTypeAmazon
}
