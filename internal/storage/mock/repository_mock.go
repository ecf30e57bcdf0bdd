package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
)

// --- Repository Mock (Combined Interface) ---

// RepositoryMock mocks the combined storage.Repository interface
type RepositoryMock struct {
	mock.Mock
}

var _ storage.Repository = (*RepositoryMock)(nil)

// ListAppointments mocks the ListAppointments method
func (m *RepositoryMock) ListAppointments(ctx context.Context, filter storage.AppointmentFilter) ([]model.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

// GetContact mocks the GetContact method
func (m *RepositoryMock) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

// GetContactsByIDs mocks the GetContactsByIDs method
func (m *RepositoryMock) GetContactsByIDs(ctx context.Context, ids []string) ([]model.Contact, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

// ListContactsWithAppointments mocks the ListContactsWithAppointments method
func (m *RepositoryMock) ListContactsWithAppointments(ctx context.Context) ([]model.ContactWithAppointments, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactWithAppointments), args.Error(1)
}

// CountWhere mocks the CountWhere method
func (m *RepositoryMock) CountWhere(ctx context.Context, table string, predicate storage.Predicate) (int64, error) {
	args := m.Called(ctx, table, predicate)
	return args.Get(0).(int64), args.Error(1)
}

// Ping mocks the Ping method
func (m *RepositoryMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks the Close method
func (m *RepositoryMock) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
