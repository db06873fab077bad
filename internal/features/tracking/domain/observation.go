package domain

import "time"

// PriceObservation is a single recorded price for a tracked item.
// Observations are append-only and never rewritten.
type PriceObservation struct {
	// ItemID is the tracked item this observation belongs to.
	ItemID string `json:"item_id"`
	// Timestamp is when the price was observed.
	Timestamp time.Time `json:"timestamp"`
	// Price is the observed price in the source's currency.
	Price float64 `json:"price"`
	// Metadata carries the source type and config snapshot at observation time.
	Metadata map[string]string `json:"metadata,omitempty"`
}
