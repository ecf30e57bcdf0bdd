package usecase

import (
	"time"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// DefaultStaleAfterDays is the recency window used when none is configured.
const DefaultStaleAfterDays = 30

// RecencyClassifier decides whether a contact has gone quiet.
type RecencyClassifier struct {
	staleAfterDays int
}

// NewRecencyClassifier creates a classifier. Non-positive values fall back to
// DefaultStaleAfterDays.
func NewRecencyClassifier(staleAfterDays int) RecencyClassifier {
	if staleAfterDays <= 0 {
		staleAfterDays = DefaultStaleAfterDays
	}
	return RecencyClassifier{staleAfterDays: staleAfterDays}
}

// Threshold is now minus the window in calendar days.
func (r RecencyClassifier) Threshold(now time.Time) time.Time {
	return now.AddDate(0, 0, -r.staleAfterDays)
}

// IsStale is true when the contact has never had an appointment or its last
// one is strictly before the threshold.
func (r RecencyClassifier) IsStale(c model.Contact, now time.Time) bool {
	if c.LastAppointmentAt == nil {
		return true
	}
	return c.LastAppointmentAt.Before(r.Threshold(now))
}

// Stale returns the stale subset, preserving input order.
func (r RecencyClassifier) Stale(contacts []model.Contact, now time.Time) []model.Contact {
	threshold := r.Threshold(now)
	out := make([]model.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.LastAppointmentAt == nil || c.LastAppointmentAt.Before(threshold) {
			out = append(out, c)
		}
	}
	return out
}

// CountStale returns the size of the stale subset without building it.
func (r RecencyClassifier) CountStale(contacts []model.Contact, now time.Time) int {
	threshold := r.Threshold(now)
	n := 0
	for _, c := range contacts {
		if c.LastAppointmentAt == nil || c.LastAppointmentAt.Before(threshold) {
			n++
		}
	}
	return n
}
