package usecase

import (
	"context"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
)

// AgendaService lists scheduled appointments joined with their contacts.
type AgendaService struct {
	appointments storage.AppointmentRepo
	joiner       ContactJoiner
}

// NewAgendaService creates a new agenda service
func NewAgendaService(appointments storage.AppointmentRepo, joiner ContactJoiner) *AgendaService {
	return &AgendaService{appointments: appointments, joiner: joiner}
}

// List returns scheduled appointments with a non-null time, earliest first.
// A nil range means list mode: no date bound.
func (s *AgendaService) List(ctx context.Context, rng *model.TimeRange) ([]model.AppointmentWithContact, error) {
	status := model.AppointmentStatusScheduled
	appointments, err := s.appointments.ListAppointments(ctx, storage.AppointmentFilter{
		Status:           &status,
		RequireScheduled: true,
		ScheduledBetween: rng,
	})
	if err != nil {
		return nil, err
	}
	return s.joiner.Join(ctx, appointments), nil
}
