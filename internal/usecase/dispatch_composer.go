package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
)

// DispatchComposer holds the bulk-messaging form: the message, the target
// mode, the manual selection and the loaded roster.
type DispatchComposer struct {
	mu         sync.Mutex
	svc        *ContactsService
	classifier RecencyClassifier
	publisher  DispatchPublisher
	clock      Clock

	Contacts  *ViewState[[]model.Contact]
	message   string
	mode      DispatchMode
	selection *SelectionSet
}

// NewDispatchComposer creates an empty composer in "all" mode.
func NewDispatchComposer(svc *ContactsService, classifier RecencyClassifier, publisher DispatchPublisher, clock Clock) *DispatchComposer {
	return &DispatchComposer{
		svc:        svc,
		classifier: classifier,
		publisher:  publisher,
		clock:      clock,
		Contacts:   NewViewState[[]model.Contact](),
		mode:       DispatchModeAll,
		selection:  NewSelectionSet(),
	}
}

// Load fetches the roster the targets are resolved against.
func (c *DispatchComposer) Load(ctx context.Context) Envelope[[]model.Contact] {
	return runCycle(ctx, PageDispatch, c.Contacts, c.svc.Roster)
}

// SetMessage replaces the message body.
func (c *DispatchComposer) SetMessage(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = message
}

// Message returns the current message body.
func (c *DispatchComposer) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// SetMode changes the target mode. The selection is kept.
func (c *DispatchComposer) SetMode(mode DispatchMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
}

// Mode returns the current target mode.
func (c *DispatchComposer) Mode() DispatchMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle flips one id in the manual selection and reports whether it is now
// selected.
func (c *DispatchComposer) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Toggle(id)
}

// SelectedCount returns the size of the manual selection.
func (c *DispatchComposer) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Len()
}

// Summary reports the size of every subset against the loaded roster.
func (c *DispatchComposer) Summary() SubsetSizes {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Sizes(c.Contacts.Snapshot().Data, c.selection, c.classifier, c.clock())
}

// Targets resolves the current mode against the loaded roster.
func (c *DispatchComposer) Targets() []model.Contact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetsLocked()
}

func (c *DispatchComposer) targetsLocked() []model.Contact {
	return ResolveTargets(c.mode, c.Contacts.Snapshot().Data, c.selection, c.classifier, c.clock())
}

// Send validates the form and reports how many contacts would receive the
// message. Nothing is delivered; an audit event is published instead. On
// success the message and the selection are reset.
func (c *DispatchComposer) Send(ctx context.Context) (model.DispatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.FromContext(ctx)
	targets := c.targetsLocked()
	if err := ValidateDispatch(c.message, targets); err != nil {
		observer.IncDispatch(string(c.mode), "rejected", 0)
		log.Info("Dispatch rejected", zap.String("mode", string(c.mode)), zap.Error(err))
		return model.DispatchResult{}, err
	}

	event := model.DispatchEvent{
		ID:          uuid.NewString(),
		Mode:        string(c.mode),
		TargetCount: len(targets),
		RequestedAt: c.clock(),
	}
	if c.publisher != nil {
		if err := c.publisher.PublishDispatch(ctx, event); err != nil {
			log.Warn("Failed to publish dispatch event", zap.String("dispatch_id", event.ID), zap.Error(err))
		}
	}

	observer.IncDispatch(string(c.mode), "success", len(targets))
	log.Info("Dispatch accepted",
		zap.String("dispatch_id", event.ID),
		zap.String("mode", string(c.mode)),
		zap.Int("targets", len(targets)),
	)

	c.message = ""
	c.selection.Clear()
	return model.DispatchResult{ID: event.ID, Mode: event.Mode, Sent: len(targets)}, nil
}
