package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/internal/reqctx"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
)

// Page names, used for logging and metrics.
const (
	PageDashboard = "dashboard"
	PageAgenda    = "agenda"
	PageContacts  = "contacts"
	PageDispatch  = "dispatch"
)

// runCycle performs one fetch cycle against state and returns the resulting
// envelope. Fetch errors end the cycle; they are never retried.
func runCycle[T any](ctx context.Context, page string, state *ViewState[T], fetch func(context.Context) (T, error)) Envelope[T] {
	ctx = reqctx.WithPage(ctx, page)
	gen := state.Begin()

	data, err := fetch(ctx)
	outcome := "success"
	if err != nil {
		outcome = "error"
		logger.FromContext(ctx).Warn("Fetch cycle failed", zap.String("page", page), zap.Error(err))
	}
	if !state.Resolve(gen, data, err) {
		outcome = "discarded"
		logger.FromContext(ctx).Debug("Discarded result of abandoned fetch cycle",
			zap.String("page", page), zap.Uint64("generation", gen))
	}
	observer.IncFetchCycle(page, outcome)
	return state.Snapshot()
}

// DashboardPage shows the three counters.
type DashboardPage struct {
	svc   *DashboardService
	State *ViewState[model.DashboardCounts]
}

// NewDashboardPage creates an active dashboard page.
func NewDashboardPage(svc *DashboardService) *DashboardPage {
	return &DashboardPage{svc: svc, State: NewViewState[model.DashboardCounts]()}
}

// Load fetches the counters.
func (p *DashboardPage) Load(ctx context.Context) Envelope[model.DashboardCounts] {
	return runCycle(ctx, PageDashboard, p.State, p.svc.Counts)
}

// AgendaRow is one agenda line: the joined appointment plus its chat link.
type AgendaRow struct {
	model.AppointmentWithContact
	ChatURL *string `json:"chat_url"`
}

// AgendaPage lists scheduled appointments for the selected period.
type AgendaPage struct {
	svc    *AgendaService
	linker ChatLinker
	View   *AgendaView
	State  *ViewState[[]AgendaRow]
}

// NewAgendaPage creates an agenda page in its initial daily state.
func NewAgendaPage(svc *AgendaService, linker ChatLinker, cal Calendar, clock Clock) *AgendaPage {
	return &AgendaPage{
		svc:    svc,
		linker: linker,
		View:   NewAgendaView(cal, clock),
		State:  NewViewState[[]AgendaRow](),
	}
}

// Load fetches appointments for the view's current range.
func (p *AgendaPage) Load(ctx context.Context) (AgendaSnapshot, Envelope[[]AgendaRow]) {
	snap := p.View.Snapshot()
	env := runCycle(ctx, PageAgenda, p.State, func(ctx context.Context) ([]AgendaRow, error) {
		joined, err := p.svc.List(ctx, snap.Range)
		if err != nil {
			return nil, err
		}
		rows := make([]AgendaRow, len(joined))
		for i, j := range joined {
			rows[i].AppointmentWithContact = j
			if link, ok := p.linker.Link(j.ConversationID); ok {
				rows[i].ChatURL = &link
			}
		}
		return rows, nil
	})
	return snap, env
}

// Contact kinds shown as the roster badge.
const (
	ContactKindClient   = "client"
	ContactKindProspect = "prospect"
)

// ContactRow is one roster line.
type ContactRow struct {
	model.Contact
	Kind  string `json:"kind"`
	Stale bool   `json:"stale"`
}

// ContactsPage shows the roster.
type ContactsPage struct {
	svc        *ContactsService
	classifier RecencyClassifier
	clock      Clock
	State      *ViewState[[]ContactRow]
}

// NewContactsPage creates an active roster page.
func NewContactsPage(svc *ContactsService, classifier RecencyClassifier, clock Clock) *ContactsPage {
	return &ContactsPage{svc: svc, classifier: classifier, clock: clock, State: NewViewState[[]ContactRow]()}
}

// Load fetches the roster.
func (p *ContactsPage) Load(ctx context.Context) Envelope[[]ContactRow] {
	return runCycle(ctx, PageContacts, p.State, func(ctx context.Context) ([]ContactRow, error) {
		contacts, err := p.svc.Roster(ctx)
		if err != nil {
			return nil, err
		}
		now := p.clock()
		rows := make([]ContactRow, len(contacts))
		for i, c := range contacts {
			kind := ContactKindProspect
			if c.IsClient() {
				kind = ContactKindClient
			}
			rows[i] = ContactRow{Contact: c, Kind: kind, Stale: p.classifier.IsStale(c, now)}
		}
		return rows, nil
	})
}
