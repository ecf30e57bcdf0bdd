package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// ListAppointments returns the appointments matching filter, ordered by
// scheduled time ascending.
func (r *PostgresRepo) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error) {
	var appointments []model.Appointment

	query := r.db.WithContext(ctx)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RequireScheduled || filter.ScheduledBetween != nil {
		query = query.Where("data_hora_agendamento IS NOT NULL")
	}
	if rng := filter.ScheduledBetween; rng != nil {
		query = query.
			Where("data_hora_agendamento >= ?", rng.Start).
			Where("data_hora_agendamento <= ?", rng.End)
	}

	startTime := utils.Now()
	result := query.Order("data_hora_agendamento ASC").Find(&appointments)
	observer.ObserveDbOperationDuration("list", "appointment", time.Since(startTime), result.Error)

	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to list appointments", zap.Error(result.Error))
		return nil, apperrors.NewQueryError("list appointments",
			fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error))
	}
	return appointments, nil
}
