package storage

import (
	"context"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// AppointmentRepoAdapter adapts the PostgresRepo to the AppointmentRepo interface
type AppointmentRepoAdapter struct {
	postgres *PostgresRepo
}

// NewAppointmentRepoAdapter creates a new appointment repository adapter
func NewAppointmentRepoAdapter(postgres *PostgresRepo) AppointmentRepo {
	return &AppointmentRepoAdapter{postgres: postgres}
}

// ListAppointments lists appointments matching the filter
func (a *AppointmentRepoAdapter) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error) {
	return a.postgres.ListAppointments(ctx, filter)
}

// ContactRepoAdapter adapts the PostgresRepo to the ContactRepo interface
type ContactRepoAdapter struct {
	postgres *PostgresRepo
}

// NewContactRepoAdapter creates a new contact repository adapter
func NewContactRepoAdapter(postgres *PostgresRepo) ContactRepo {
	return &ContactRepoAdapter{postgres: postgres}
}

// GetContact finds a contact by ID
func (a *ContactRepoAdapter) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	return a.postgres.FindContactByID(ctx, id)
}

// GetContactsByIDs finds every contact whose ID is in ids
func (a *ContactRepoAdapter) GetContactsByIDs(ctx context.Context, ids []string) ([]model.Contact, error) {
	return a.postgres.FindContactsByIDs(ctx, ids)
}

// ListContactsWithAppointments lists the roster with nested appointments
func (a *ContactRepoAdapter) ListContactsWithAppointments(ctx context.Context) ([]model.ContactWithAppointments, error) {
	return a.postgres.ListContactsWithAppointments(ctx)
}

// CounterRepoAdapter adapts the PostgresRepo to the CounterRepo interface
type CounterRepoAdapter struct {
	postgres *PostgresRepo
}

// NewCounterRepoAdapter creates a new counter repository adapter
func NewCounterRepoAdapter(postgres *PostgresRepo) CounterRepo {
	return &CounterRepoAdapter{postgres: postgres}
}

// CountWhere counts rows of table matching the predicate
func (a *CounterRepoAdapter) CountWhere(ctx context.Context, table string, predicate Predicate) (int64, error) {
	return a.postgres.CountWhere(ctx, table, predicate)
}

// postgresRepository exposes PostgresRepo as a Repository, mapping interface
// names onto the repo's own method names.
type postgresRepository struct {
	AppointmentRepo
	ContactRepo
	CounterRepo
	postgres *PostgresRepo
}

// NewRepository wires the adapters into a single Repository.
func NewRepository(postgres *PostgresRepo) Repository {
	return &postgresRepository{
		AppointmentRepo: NewAppointmentRepoAdapter(postgres),
		ContactRepo:     NewContactRepoAdapter(postgres),
		CounterRepo:     NewCounterRepoAdapter(postgres),
		postgres:        postgres,
	}
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.postgres.Ping(ctx)
}

func (r *postgresRepository) Close(ctx context.Context) error {
	return r.postgres.Close(ctx)
}
