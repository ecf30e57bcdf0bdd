package model

import "time"

// DashboardCounts holds the three headline counters. Each one comes from its
// own count query, so they may be read at slightly different instants.
type DashboardCounts struct {
	CompletedAppointments int64 `json:"completed_appointments"`
	ScheduledAppointments int64 `json:"scheduled_appointments"`
	FollowUpsSent         int64 `json:"follow_ups_sent"`
}

// TimeRange is an inclusive [Start, End] interval.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
