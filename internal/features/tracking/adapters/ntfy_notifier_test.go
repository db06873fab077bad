package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"price-tracker/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNtfyNotifier_Send_Success verifies the publish request shape.
func TestNtfyNotifier_Send_Success(t *testing.T) {
	message := "📈 MacBook Air M1 Price Alert!\nPrevious: $100.00\nCurrent: $105.00\nChange: +5.00%"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/price-alerts", r.URL.Path)
		assert.Equal(t, "Price Tracker", r.Header.Get("X-Title"))
		assert.Equal(t, "shopee_5873954476", r.Header.Get("X-Tags"))
		assert.Empty(t, r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, message, string(body))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNtfyNotifier(config.NtfyConfig{
		URL:   server.URL,
		Topic: "price-alerts",
	})

	err := notifier.Send(context.Background(), message, "shopee_5873954476")
	assert.NoError(t, err)
}

// TestNtfyNotifier_Send_WithToken verifies bearer authentication.
func TestNtfyNotifier_Send_WithToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tk_secret", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNtfyNotifier(config.NtfyConfig{
		URL:   server.URL,
		Topic: "price-alerts",
		Token: "tk_secret",
	})

	err := notifier.Send(context.Background(), "gold price moved", "gold_doji")
	assert.NoError(t, err)
}

// TestNtfyNotifier_Send_NoRoutingKey verifies the tag header is omitted when empty.
func TestNtfyNotifier_Send_NoRoutingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Tags"]
		assert.False(t, present)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewNtfyNotifier(config.NtfyConfig{
		URL:   server.URL,
		Topic: "price-alerts",
	})

	err := notifier.Send(context.Background(), "test message", "")
	assert.NoError(t, err)
}

// TestNtfyNotifier_Send_ServerError verifies non-2xx responses fail the delivery.
func TestNtfyNotifier_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("topic quota exceeded"))
	}))
	defer server.Close()

	notifier := NewNtfyNotifier(config.NtfyConfig{
		URL:   server.URL,
		Topic: "price-alerts",
	})

	err := notifier.Send(context.Background(), "test message", "gold_doji")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "topic quota exceeded")
}
