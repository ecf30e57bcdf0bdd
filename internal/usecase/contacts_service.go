package usecase

import (
	"context"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
)

// ContactsService builds the contact roster.
type ContactsService struct {
	contacts storage.ContactRepo
}

// NewContactsService creates a new contacts service
func NewContactsService(contacts storage.ContactRepo) *ContactsService {
	return &ContactsService{contacts: contacts}
}

// Roster returns every contact, newest registration first, with
// LastAppointmentAt derived from its appointments. Contacts that never had an
// appointment are included with a nil LastAppointmentAt.
func (s *ContactsService) Roster(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.contacts.ListContactsWithAppointments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Contact, len(rows))
	for i, row := range rows {
		out[i] = row.Contact
		out[i].LastAppointmentAt = row.LatestAppointment()
	}
	return out, nil
}
