package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// FindContactByID fetches exactly one contact. A missing row yields
// apperrors.ErrNotFound.
func (r *PostgresRepo) FindContactByID(ctx context.Context, id string) (*model.Contact, error) {
	var contact model.Contact

	startTime := utils.Now()
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&contact)

	var findErr error
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			findErr = fmt.Errorf("%w: contact_id %s: %w", apperrors.ErrNotFound, id, result.Error)
		} else {
			findErr = fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error)
		}
	}
	observer.ObserveDbOperationDuration("find_by_id", "contact", time.Since(startTime), findErr)

	if findErr != nil {
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return nil, findErr
		}
		logger.FromContext(ctx).Error("Failed to find contact by ID",
			zap.String("contact_id", id),
			zap.Error(findErr))
		return nil, apperrors.NewQueryError("get contact", findErr)
	}
	return &contact, nil
}

// FindContactsByIDs fetches every contact whose id is in ids with a single
// IN query. Unknown ids are silently absent from the result.
func (r *PostgresRepo) FindContactsByIDs(ctx context.Context, ids []string) ([]model.Contact, error) {
	if len(ids) == 0 {
		return []model.Contact{}, nil
	}

	var contacts []model.Contact
	startTime := utils.Now()
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&contacts)
	observer.ObserveDbOperationDuration("find_by_ids", "contact", time.Since(startTime), result.Error)

	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to find contacts by IDs",
			zap.Int("id_count", len(ids)),
			zap.Error(result.Error))
		return nil, apperrors.NewQueryError("get contacts",
			fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error))
	}
	return contacts, nil
}

// ListContactsWithAppointments returns every contact, newest registration
// first, each with the appointments referencing it. Contacts without
// appointments carry an empty slice.
func (r *PostgresRepo) ListContactsWithAppointments(ctx context.Context) ([]model.ContactWithAppointments, error) {
	log := logger.FromContext(ctx)

	var contacts []model.Contact
	startTime := utils.Now()
	result := r.db.WithContext(ctx).Order("data_cadastro DESC").Find(&contacts)
	observer.ObserveDbOperationDuration("list", "contact", time.Since(startTime), result.Error)
	if result.Error != nil {
		log.Error("Failed to list contacts", zap.Error(result.Error))
		return nil, apperrors.NewQueryError("list contacts",
			fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error))
	}

	rows := make([]model.ContactWithAppointments, len(contacts))
	if len(contacts) == 0 {
		return rows, nil
	}

	ids := make([]string, len(contacts))
	index := make(map[string]int, len(contacts))
	for i, c := range contacts {
		rows[i] = model.ContactWithAppointments{Contact: c, Appointments: []model.Appointment{}}
		ids[i] = c.ID
		index[c.ID] = i
	}

	var appointments []model.Appointment
	startTime = utils.Now()
	result = r.db.WithContext(ctx).
		Where("cliente_id IN ?", ids).
		Order("data_hora_agendamento DESC").
		Find(&appointments)
	observer.ObserveDbOperationDuration("list_by_contacts", "appointment", time.Since(startTime), result.Error)
	if result.Error != nil {
		log.Error("Failed to list appointments for contacts",
			zap.Int("contact_count", len(ids)),
			zap.Error(result.Error))
		return nil, apperrors.NewQueryError("list contacts",
			fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error))
	}

	for _, a := range appointments {
		if a.ContactID == nil {
			continue
		}
		if i, ok := index[*a.ContactID]; ok {
			rows[i].Appointments = append(rows[i].Appointments, a)
		}
	}
	return rows, nil
}
