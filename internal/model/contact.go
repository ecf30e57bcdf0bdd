package model

import (
	"time"

	"gorm.io/gorm/schema"
)

// Contact represents a row of the clientes table.
type Contact struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name                string    `json:"name" gorm:"column:nome;type:text"`
	Phone               string    `json:"phone" gorm:"column:telefone;type:text"`
	RegisteredAt        time.Time `json:"registered_at" gorm:"column:data_cadastro"`
	FirstContactHandled bool      `json:"first_contact_handled" gorm:"column:primeiro_atendimento;default:false"` // true = established client, false = prospect

	// Derived from the contact's appointments, never stored.
	LastAppointmentAt *time.Time `json:"last_appointment_at,omitempty" gorm:"-"`
}

// TableName specifies the table name for the Contact model, respecting the Namer.
func (Contact) TableName(namer schema.Namer) string {
	return namer.TableName("clientes")
}

// IsClient reports whether the contact is an established client rather than a prospect.
func (c Contact) IsClient() bool {
	return c.FirstContactHandled
}

// ContactWithAppointments is a contact together with every appointment that
// references it, as returned by the roster query.
type ContactWithAppointments struct {
	Contact
	Appointments []Appointment `json:"appointments"`
}

// LatestAppointment returns the most recent non-null scheduled time among the
// contact's appointments, or nil when there is none.
func (c ContactWithAppointments) LatestAppointment() *time.Time {
	var latest *time.Time
	for i := range c.Appointments {
		at := c.Appointments[i].ScheduledAt
		if at == nil {
			continue
		}
		if latest == nil || at.After(*latest) {
			t := *at
			latest = &t
		}
	}
	return latest
}
