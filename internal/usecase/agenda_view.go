package usecase

import (
	"sync"
	"time"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// AgendaView is the agenda page state machine. The outer state only changes
// on SelectMode; Next, Prev and Today move the anchor within a calendar mode.
type AgendaView struct {
	mu     sync.Mutex
	cal    Calendar
	clock  Clock
	mode   ViewMode
	anchor time.Time
}

// AgendaSnapshot is a consistent read of the agenda state.
type AgendaSnapshot struct {
	Mode   ViewMode         `json:"mode"`
	Anchor time.Time        `json:"anchor"`
	Range  *model.TimeRange `json:"range"`
}

// NewAgendaView starts in daily mode anchored at the current instant.
func NewAgendaView(cal Calendar, clock Clock) *AgendaView {
	return &AgendaView{
		cal:    cal,
		clock:  clock,
		mode:   ViewModeDaily,
		anchor: cal.Today(clock()),
	}
}

// SelectMode switches the outer state. The anchor is kept so returning to a
// calendar mode shows the same period.
func (v *AgendaView) SelectMode(mode ViewMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

// SetAnchor jumps to an explicit date.
func (v *AgendaView) SetAnchor(anchor time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anchor = anchor.In(v.cal.Location())
}

// Next advances the anchor by one period.
func (v *AgendaView) Next() {
	v.step(1)
}

// Prev moves the anchor back by one period.
func (v *AgendaView) Prev() {
	v.step(-1)
}

func (v *AgendaView) step(steps int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anchor = v.cal.Navigate(v.mode, v.anchor, steps)
}

// Today resets the anchor to now.
func (v *AgendaView) Today() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.anchor = v.cal.Today(v.clock())
}

// Snapshot returns the mode, anchor and the range they select.
func (v *AgendaView) Snapshot() AgendaSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return AgendaSnapshot{
		Mode:   v.mode,
		Anchor: v.anchor,
		Range:  v.cal.RangeFor(v.mode, v.anchor),
	}
}
