package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
)

// DashboardService reads the headline counters.
type DashboardService struct {
	counter storage.CounterRepo
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(counter storage.CounterRepo) *DashboardService {
	return &DashboardService{counter: counter}
}

// Counts issues the three count queries concurrently. They are independent
// reads with no snapshot shared between them. The first failure is returned.
func (s *DashboardService) Counts(ctx context.Context) (model.DashboardCounts, error) {
	var counts model.DashboardCounts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.counter.CountWhere(gctx, storage.TableAppointments,
			storage.Predicate{Column: "status", Value: model.AppointmentStatusCompleted})
		counts.CompletedAppointments = n
		return err
	})
	g.Go(func() error {
		n, err := s.counter.CountWhere(gctx, storage.TableAppointments,
			storage.Predicate{Column: "status", Value: model.AppointmentStatusScheduled})
		counts.ScheduledAppointments = n
		return err
	})
	g.Go(func() error {
		n, err := s.counter.CountWhere(gctx, storage.TableFollowUps,
			storage.Predicate{Column: "status", Value: model.FollowUpStatusSent})
		counts.FollowUpsSent = n
		return err
	})

	if err := g.Wait(); err != nil {
		return model.DashboardCounts{}, err
	}
	return counts, nil
}
