package model

import (
	"strings"
	"time"

	"gorm.io/gorm/schema"
)

// Appointment status values as stored in agendamentos.status.
const (
	AppointmentStatusScheduled = "agendado"
	AppointmentStatusCompleted = "concluido"
)

// Appointment represents a row of the agendamentos table.
type Appointment struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid"`
	ScheduledAt    *time.Time `json:"scheduled_at" gorm:"column:data_hora_agendamento"`
	Status         string     `json:"status" gorm:"column:status;type:text"`
	ConversationID *string    `json:"conversation_id" gorm:"column:whaticket_conversation_id;type:text"`
	ContactID      *string    `json:"contact_id" gorm:"column:cliente_id;type:uuid"`
}

// TableName specifies the table name for the Appointment model, respecting the Namer.
func (Appointment) TableName(namer schema.Namer) string {
	return namer.TableName("agendamentos")
}

// HasContact reports whether the appointment carries a usable contact reference.
func (a Appointment) HasContact() bool {
	return a.ContactID != nil && strings.TrimSpace(*a.ContactID) != ""
}

// AppointmentWithContact pairs an appointment with its resolved contact. It is
// built by the join in memory and never persisted. Contact is nil when the
// reference is null or could not be resolved.
type AppointmentWithContact struct {
	Appointment
	Contact *Contact `json:"contact"`
}
