package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/config"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// Contact lookup outcomes, used as metric labels.
const (
	lookupResolved    = "resolved"
	lookupNotFound    = "not_found"
	lookupError       = "error"
	lookupSkipped     = "skipped"
	lookupSubmitError = "submit_error"
)

// ContactJoiner pairs appointments with their contacts. The result has one
// entry per input appointment, in input order. A null reference or a failed
// lookup leaves Contact nil; Join never fails as a whole.
type ContactJoiner interface {
	Join(ctx context.Context, appointments []model.Appointment) []model.AppointmentWithContact
}

// lookupTask resolves one arena slot.
type lookupTask struct {
	ctx       context.Context
	index     int
	contactID string
	arena     []model.AppointmentWithContact
	wg        *sync.WaitGroup
}

// ContactLookupWorker resolves contacts one lookup per appointment on a
// bounded worker pool. Each task writes only its own arena slot, so the
// assembled order is the input order whatever the completion order.
type ContactLookupWorker struct {
	pool       *ants.PoolWithFunc
	contacts   storage.ContactRepo
	cfg        config.LookupPoolConfig
	baseLogger *zap.Logger
}

var _ ContactJoiner = (*ContactLookupWorker)(nil)

// NewContactLookupWorker creates and initializes the lookup pool.
func NewContactLookupWorker(cfg config.LookupPoolConfig, contacts storage.ContactRepo, baseLogger *zap.Logger) (*ContactLookupWorker, error) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 16
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = time.Minute
	}
	worker := &ContactLookupWorker{
		contacts:   contacts,
		cfg:        cfg,
		baseLogger: baseLogger.Named("contact_lookup"),
	}

	pool, err := ants.NewPoolWithFunc(cfg.PoolSize, func(i interface{}) {
		task, ok := i.(lookupTask)
		if !ok {
			worker.baseLogger.Error("Invalid task data type received", zap.Any("data", i))
			return
		}
		defer task.wg.Done()
		worker.resolve(task)
	},
		ants.WithExpiryDuration(cfg.ExpiryTime),
		ants.WithNonblocking(false),
		ants.WithLogger(antsLogger{logger: worker.baseLogger.Named("ants_pool")}),
		ants.WithPanicHandler(func(p interface{}) {
			worker.baseLogger.Error("Panic recovered in contact lookup worker", zap.Any("panic_error", p), zap.Stack("stack"))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact lookup pool: %w", err)
	}
	worker.pool = pool
	worker.baseLogger.Info("Contact lookup pool initialized",
		zap.Int("pool_size", cfg.PoolSize),
		zap.Duration("expiry_time", cfg.ExpiryTime),
	)
	return worker, nil
}

// Join fans the lookups out on the pool and waits for all of them.
func (w *ContactLookupWorker) Join(ctx context.Context, appointments []model.Appointment) []model.AppointmentWithContact {
	arena := make([]model.AppointmentWithContact, len(appointments))
	var wg sync.WaitGroup

	for i, appt := range appointments {
		arena[i].Appointment = appt
		if !appt.HasContact() {
			observer.IncContactLookup(lookupSkipped)
			continue
		}

		wg.Add(1)
		task := lookupTask{ctx: ctx, index: i, contactID: *appt.ContactID, arena: arena, wg: &wg}
		if err := w.pool.Invoke(task); err != nil {
			wg.Done()
			observer.IncContactLookup(lookupSubmitError)
			logger.FromContextOr(ctx, w.baseLogger).Warn("Failed to submit contact lookup",
				zap.String("appointment_id", appt.ID),
				zap.Error(&apperrors.RowResolutionError{Index: i, ContactID: *appt.ContactID, Err: err}),
			)
		}
	}

	wg.Wait()
	return arena
}

// resolve runs on a pool goroutine.
func (w *ContactLookupWorker) resolve(task lookupTask) {
	log := logger.FromContextOr(task.ctx, w.baseLogger)

	var contact *model.Contact
	lookup := utils.WrapWithContextRecovery(func(ctx context.Context) error {
		c, err := w.contacts.GetContact(ctx, task.contactID)
		if err != nil {
			return err
		}
		contact = c
		return nil
	})

	if err := lookup(task.ctx); err != nil {
		outcome := lookupError
		if errors.Is(err, apperrors.ErrNotFound) {
			outcome = lookupNotFound
		}
		observer.IncContactLookup(outcome)
		log.Warn("Contact lookup failed, leaving row without contact",
			zap.String("appointment_id", task.arena[task.index].ID),
			zap.Error(&apperrors.RowResolutionError{Index: task.index, ContactID: task.contactID, Err: err}),
		)
		return
	}

	observer.IncContactLookup(lookupResolved)
	task.arena[task.index].Contact = contact
}

// Running returns the number of busy workers.
func (w *ContactLookupWorker) Running() int {
	return w.pool.Running()
}

// Stop releases the pool, waiting up to timeout for running lookups.
func (w *ContactLookupWorker) Stop(timeout time.Duration) {
	if err := w.pool.ReleaseTimeout(timeout); err != nil {
		w.baseLogger.Warn("Contact lookup pool did not drain in time", zap.Error(err))
		return
	}
	w.baseLogger.Info("Contact lookup pool stopped")
}

// antsLogger routes the pool's own diagnostics to zap.
type antsLogger struct {
	logger *zap.Logger
}

func (a antsLogger) Printf(format string, args ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, args...))
}

// BatchContactJoiner resolves every contact with one IN query. The result is
// the same as ContactLookupWorker's; a failed batch leaves every contact nil.
type BatchContactJoiner struct {
	contacts storage.ContactRepo
}

var _ ContactJoiner = (*BatchContactJoiner)(nil)

// NewBatchContactJoiner creates a batched joiner.
func NewBatchContactJoiner(contacts storage.ContactRepo) *BatchContactJoiner {
	return &BatchContactJoiner{contacts: contacts}
}

// Join implements ContactJoiner.
func (j *BatchContactJoiner) Join(ctx context.Context, appointments []model.Appointment) []model.AppointmentWithContact {
	arena := make([]model.AppointmentWithContact, len(appointments))

	seen := make(map[string]struct{})
	ids := make([]string, 0, len(appointments))
	for i, appt := range appointments {
		arena[i].Appointment = appt
		if !appt.HasContact() {
			observer.IncContactLookup(lookupSkipped)
			continue
		}
		if _, ok := seen[*appt.ContactID]; !ok {
			seen[*appt.ContactID] = struct{}{}
			ids = append(ids, *appt.ContactID)
		}
	}
	if len(ids) == 0 {
		return arena
	}

	contacts, err := j.contacts.GetContactsByIDs(ctx, ids)
	if err != nil {
		observer.IncContactLookup(lookupError)
		logger.FromContext(ctx).Warn("Batched contact lookup failed, leaving rows without contact",
			zap.Int("contact_count", len(ids)),
			zap.Error(err),
		)
		return arena
	}

	byID := make(map[string]model.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}
	for i := range arena {
		if !arena[i].HasContact() {
			continue
		}
		c, ok := byID[*arena[i].ContactID]
		if !ok {
			observer.IncContactLookup(lookupNotFound)
			continue
		}
		observer.IncContactLookup(lookupResolved)
		contact := c
		arena[i].Contact = &contact
	}
	return arena
}
