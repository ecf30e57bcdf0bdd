package model

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// init ensures gofakeit is seeded.
func init() {
	gofakeit.Seed(time.Now().UnixNano())
}

// NewContact creates a new Contact instance with default fake data.
// Non-zero fields of the override replace the generated ones.
func NewContact(overrideDefaults ...*Contact) *Contact {
	base := &Contact{
		ID:                  gofakeit.UUID(),
		Name:                gofakeit.Name(),
		Phone:               gofakeit.Phone(),
		RegisteredAt:        utils.Now().Add(-time.Duration(gofakeit.Number(1, 365)) * 24 * time.Hour),
		FirstContactHandled: gofakeit.Bool(),
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if ovr.Name != "" {
			base.Name = ovr.Name
		}
		if ovr.Phone != "" {
			base.Phone = ovr.Phone
		}
		if !ovr.RegisteredAt.IsZero() {
			base.RegisteredAt = ovr.RegisteredAt
		}
		// Bool and pointer fields are always taken from the override
		base.FirstContactHandled = ovr.FirstContactHandled
		base.LastAppointmentAt = ovr.LastAppointmentAt
	}
	return base
}

// NewAppointment creates a new Appointment instance with default fake data.
func NewAppointment(overrideDefaults ...*Appointment) *Appointment {
	scheduledAt := utils.Now().Add(time.Duration(gofakeit.Number(1, 240)) * time.Hour).Truncate(time.Minute)
	contactID := gofakeit.UUID()
	conversationID := gofakeit.DigitN(6)
	base := &Appointment{
		ID:             gofakeit.UUID(),
		ScheduledAt:    &scheduledAt,
		Status:         AppointmentStatusScheduled,
		ConversationID: &conversationID,
		ContactID:      &contactID,
	}

	if len(overrideDefaults) > 0 && overrideDefaults[0] != nil {
		ovr := overrideDefaults[0]
		if ovr.ID != "" {
			base.ID = ovr.ID
		}
		if ovr.Status != "" {
			base.Status = ovr.Status
		}
		// Pointer fields are always taken from the override so tests can null them
		base.ScheduledAt = ovr.ScheduledAt
		base.ConversationID = ovr.ConversationID
		base.ContactID = ovr.ContactID
	}
	return base
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
