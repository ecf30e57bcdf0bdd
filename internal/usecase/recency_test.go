package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

func TestRecencyClassifier_IsStale(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	classifier := NewRecencyClassifier(30)
	boundary := now.AddDate(0, 0, -30)

	tests := []struct {
		name string
		last *time.Time
		want bool
	}{
		{name: "never scheduled", last: nil, want: true},
		{name: "exactly 30 days ago", last: model.TimePtr(boundary), want: false},
		{name: "just before the boundary", last: model.TimePtr(boundary.Add(-time.Nanosecond)), want: true},
		{name: "40 days ago", last: model.TimePtr(now.AddDate(0, 0, -40)), want: true},
		{name: "10 days ago", last: model.TimePtr(now.AddDate(0, 0, -10)), want: false},
		{name: "in the future", last: model.TimePtr(now.AddDate(0, 0, 3)), want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := model.Contact{ID: "c", LastAppointmentAt: tc.last}
			assert.Equal(t, tc.want, classifier.IsStale(c, now))
		})
	}
}

func TestRecencyClassifier_UsesCalendarDays(t *testing.T) {
	// 30 calendar days before March 31 is March 1, across a short month.
	now := time.Date(2024, 3, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), NewRecencyClassifier(30).Threshold(now))
}

func TestRecencyClassifier_DefaultWindow(t *testing.T) {
	now := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -DefaultStaleAfterDays), NewRecencyClassifier(0).Threshold(now))
}

func TestRecencyClassifier_StaleSubset(t *testing.T) {
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
	a := model.Contact{ID: "A", LastAppointmentAt: model.TimePtr(now.AddDate(0, 0, -40))}
	b := model.Contact{ID: "B", LastAppointmentAt: model.TimePtr(now.AddDate(0, 0, -10))}
	c := model.Contact{ID: "C"}
	classifier := NewRecencyClassifier(30)

	stale := classifier.Stale([]model.Contact{a, b, c}, now)
	assert.Equal(t, []string{"A", "C"}, contactIDs(stale))
	assert.Equal(t, 2, classifier.CountStale([]model.Contact{a, b, c}, now))
}

func contactIDs(contacts []model.Contact) []string {
	ids := make([]string, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	return ids
}
