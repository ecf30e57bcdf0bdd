package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContactWithAppointments_LatestAppointment(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	c := ContactWithAppointments{
		Contact: *NewContact(),
		Appointments: []Appointment{
			{ID: "a1", ScheduledAt: TimePtr(now.AddDate(0, 0, -40))},
			{ID: "a2", ScheduledAt: nil},
			{ID: "a3", ScheduledAt: TimePtr(now.AddDate(0, 0, -3))},
			{ID: "a4", ScheduledAt: TimePtr(now.AddDate(0, 0, -10))},
		},
	}
	latest := c.LatestAppointment()
	if assert.NotNil(t, latest) {
		assert.Equal(t, now.AddDate(0, 0, -3), *latest)
	}

	empty := ContactWithAppointments{Contact: *NewContact()}
	assert.Nil(t, empty.LatestAppointment())

	onlyNull := ContactWithAppointments{Appointments: []Appointment{{ID: "x"}}}
	assert.Nil(t, onlyNull.LatestAppointment())
}

func TestAppointment_HasContact(t *testing.T) {
	assert.False(t, Appointment{}.HasContact())
	assert.False(t, Appointment{ContactID: StringPtr("  ")}.HasContact())
	assert.True(t, Appointment{ContactID: StringPtr("c-1")}.HasContact())
}

func TestTimeRange_ContainsBounds(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	r := TimeRange{Start: start, End: start.Add(24*time.Hour - time.Nanosecond)}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(start.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(start.Add(24*time.Hour)))
}

func TestFactories_Overrides(t *testing.T) {
	c := NewContact(&Contact{ID: "fixed", FirstContactHandled: true})
	assert.Equal(t, "fixed", c.ID)
	assert.True(t, c.IsClient())
	assert.NotEmpty(t, c.Name)

	a := NewAppointment(&Appointment{ID: "appt", ContactID: nil})
	assert.Equal(t, "appt", a.ID)
	assert.Nil(t, a.ContactID)
	assert.Nil(t, a.ScheduledAt)
	assert.Equal(t, AppointmentStatusScheduled, a.Status)

	def := NewAppointment()
	assert.True(t, def.HasContact())
	assert.NotNil(t, def.ScheduledAt)
}
