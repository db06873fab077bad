package domain

import "time"

const (
	// StatusCodeOK marks an outcome whose tracking cycle completed.
	StatusCodeOK = 200
	// StatusCodeError marks an outcome that failed before completing.
	StatusCodeError = 500
)

// Stage values identify where in the tracking cycle a failure happened.
const (
	StageValidate   = "validate"
	StageFetch      = "fetch"
	StageStoreRead  = "store_read"
	StageStoreWrite = "store_write"
	StageInternal   = "internal"
)

// TrackingOutcome describes the result of one tracking attempt for one item.
type TrackingOutcome struct {
	// ItemID is the tracked item. Empty for systemic failures that happened
	// before any item was selected (e.g. listing the catalog failed).
	ItemID string `json:"item_id,omitempty"`
	// StatusCode is StatusCodeOK or StatusCodeError.
	StatusCode int `json:"status_code"`
	// CurrentPrice is the freshly fetched price. Only meaningful on success.
	CurrentPrice float64 `json:"current_price,omitempty"`
	// PreviousPrice is the last stored price. Nil on the first observation.
	PreviousPrice *float64 `json:"previous_price,omitempty"`
	// PriceChanged reports whether the change crossed the alert threshold.
	PriceChanged bool `json:"price_changed"`
	// Stage names the failed step on error outcomes.
	Stage string `json:"stage,omitempty"`
	// Error is the failure description on error outcomes.
	Error string `json:"error,omitempty"`
	// NotifyError records a failed alert delivery. The outcome still counts
	// as successful; alerts are best-effort.
	NotifyError string `json:"notify_error,omitempty"`
	// Timestamp is when the tracking attempt ran.
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorOutcome builds a failed outcome for the given stage.
func NewErrorOutcome(itemID, stage string, err error) TrackingOutcome {
	return TrackingOutcome{
		ItemID:     itemID,
		StatusCode: StatusCodeError,
		Stage:      stage,
		Error:      err.Error(),
		Timestamp:  time.Now(),
	}
}

// Succeeded reports whether the tracking cycle completed.
func (o TrackingOutcome) Succeeded() bool {
	return o.StatusCode == StatusCodeOK
}
