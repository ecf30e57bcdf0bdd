package storage

import (
	"context"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// AppointmentFilter narrows ListAppointments. Nil fields are not applied.
type AppointmentFilter struct {
	Status *string
	// RequireScheduled drops rows whose scheduled time is null.
	RequireScheduled bool
	// ScheduledBetween restricts rows to an inclusive scheduled-time range and
	// implies RequireScheduled.
	ScheduledBetween *model.TimeRange
}

// Predicate is a single equality condition used by CountWhere.
type Predicate struct {
	Column string
	Value  any
}

// AppointmentRepo defines appointment read operations
type AppointmentRepo interface {
	ListAppointments(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error)
}

// ContactRepo defines contact read operations
type ContactRepo interface {
	GetContact(ctx context.Context, id string) (*model.Contact, error)
	GetContactsByIDs(ctx context.Context, ids []string) ([]model.Contact, error)
	ListContactsWithAppointments(ctx context.Context) ([]model.ContactWithAppointments, error)
}

// CounterRepo defines aggregate count operations
type CounterRepo interface {
	CountWhere(ctx context.Context, table string, predicate Predicate) (int64, error)
}

// HealthChecker is satisfied by anything that can report store reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Repository groups every read operation the dashboard needs.
type Repository interface {
	AppointmentRepo
	ContactRepo
	CounterRepo
	HealthChecker
	Close(ctx context.Context) error
}
