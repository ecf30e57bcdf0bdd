package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// Table names accepted by CountWhere.
const (
	TableAppointments = "agendamentos"
	TableContacts     = "clientes"
	TableFollowUps    = "followups"
)

type countable struct {
	newModel func() any
	columns  map[string]struct{}
}

func columnSet(cols ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}
	return set
}

// countables whitelists the tables and columns CountWhere may touch, so the
// identifiers it interpolates never come from caller input unchecked.
var countables = map[string]countable{
	TableAppointments: {
		newModel: func() any { return &model.Appointment{} },
		columns:  columnSet("status", "cliente_id", "whaticket_conversation_id"),
	},
	TableContacts: {
		newModel: func() any { return &model.Contact{} },
		columns:  columnSet("primeiro_atendimento", "telefone"),
	},
	TableFollowUps: {
		newModel: func() any { return &model.FollowUp{} },
		columns:  columnSet("status"),
	},
}

// CountWhere counts rows of table where predicate.Column equals
// predicate.Value.
func (r *PostgresRepo) CountWhere(ctx context.Context, table string, predicate Predicate) (int64, error) {
	target, ok := countables[table]
	if !ok {
		return 0, fmt.Errorf("%w: unknown table %q", apperrors.ErrBadRequest, table)
	}
	if _, ok := target.columns[predicate.Column]; !ok {
		return 0, fmt.Errorf("%w: unknown column %q for table %q", apperrors.ErrBadRequest, predicate.Column, table)
	}

	var count int64
	startTime := utils.Now()
	result := r.db.WithContext(ctx).
		Model(target.newModel()).
		Where(clause.Eq{Column: clause.Column{Name: predicate.Column}, Value: predicate.Value}).
		Count(&count)
	observer.ObserveDbOperationDuration("count", table, time.Since(startTime), result.Error)

	if result.Error != nil {
		logger.FromContext(ctx).Error("Failed to count rows",
			zap.String("table", table),
			zap.String("column", predicate.Column),
			zap.Error(result.Error))
		return 0, apperrors.NewQueryError("count "+table,
			fmt.Errorf("%w: query failed: %w", apperrors.ErrDatabase, result.Error))
	}
	return count, nil
}
