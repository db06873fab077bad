package domain

import (
	"errors"
	"time"

	trackingdomain "price-tracker/internal/features/tracking/domain"

	"github.com/google/uuid"
)

// Trigger identifies what started a tracking run.
type Trigger string

const (
	TriggerAPI       Trigger = "api"
	TriggerScheduler Trigger = "scheduler"
	TriggerCLI       Trigger = "cli"
)

var (
	ErrInvalidTrigger = errors.New("invalid run trigger")
)

// RunReport summarizes one batch tracking run.
type RunReport struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`
	// Trigger records what started the run.
	Trigger    Trigger   `json:"trigger"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Total is the number of items the run attempted.
	Total int `json:"total"`
	// Succeeded counts outcomes whose tracking cycle completed.
	Succeeded int `json:"succeeded"`
	// Failed counts outcomes that stopped on an error.
	Failed int `json:"failed"`
	// Notified counts delivered price alerts.
	Notified int `json:"notified"`
	// Outcomes holds the per-item results in input order.
	Outcomes []trackingdomain.TrackingOutcome `json:"outcomes"`
}

// NewRunReport creates a new RunReport and computes the outcome counters.
func NewRunReport(trigger Trigger, startedAt, finishedAt time.Time, outcomes []trackingdomain.TrackingOutcome) (*RunReport, error) {
	if trigger != TriggerAPI && trigger != TriggerScheduler && trigger != TriggerCLI {
		return nil, ErrInvalidTrigger
	}

	report := &RunReport{
		ID:         uuid.NewString(),
		Trigger:    trigger,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Total:      len(outcomes),
		Outcomes:   outcomes,
	}

	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
		if outcome.PriceChanged && outcome.NotifyError == "" {
			report.Notified++
		}
	}

	return report, nil
}
