package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"price-tracker/internal/core/config"
	"price-tracker/internal/core/httpclient"
	"price-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// NtfyNotifier delivers price alerts as push notifications through a
// ntfy server topic.
type NtfyNotifier struct {
	cfg    config.NtfyConfig
	client *http.Client
	logger *zap.Logger
}

// NewNtfyNotifier creates a new NtfyNotifier for the configured topic.
func NewNtfyNotifier(cfg config.NtfyConfig) *NtfyNotifier {
	return &NtfyNotifier{
		cfg:    cfg,
		client: httpclient.NewClient(10 * time.Second),
		logger: logger.Get(),
	}
}

// Send publishes the message to the configured topic. The routing key is
// attached as a tag so subscribers can filter alerts per item.
func (n *NtfyNotifier) Send(ctx context.Context, message, routingKey string) error {
	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(n.cfg.URL, "/"), n.cfg.Topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to create ntfy request: %w", err)
	}

	req.Header.Set("X-Title", "Price Tracker")
	if routingKey != "" {
		req.Header.Set("X-Tags", routingKey)
	}
	if n.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.Token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("ntfy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ntfy returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	n.logger.Debug("Notification delivered",
		zap.String("topic", n.cfg.Topic),
		zap.String("routing_key", routingKey),
	)

	return nil
}
