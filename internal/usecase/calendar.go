package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// Clock returns the current instant. Injected so date logic is testable.
type Clock func() time.Time

// ViewMode is the outer state of the agenda page.
type ViewMode string

const (
	ViewModeDaily  ViewMode = "agenda-daily"
	ViewModeWeekly ViewMode = "agenda-weekly"
	ViewModeList   ViewMode = "list"
)

// ParseViewMode accepts the canonical names and the short forms used in
// query strings. An empty string yields the initial daily mode.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily", string(ViewModeDaily):
		return ViewModeDaily, nil
	case "weekly", string(ViewModeWeekly):
		return ViewModeWeekly, nil
	case string(ViewModeList):
		return ViewModeList, nil
	default:
		return "", fmt.Errorf("%w: unknown view mode %q", apperrors.ErrBadRequest, s)
	}
}

// IsCalendar reports whether the mode filters by a date range.
func (m ViewMode) IsCalendar() bool {
	return m == ViewModeDaily || m == ViewModeWeekly
}

// Calendar computes agenda date ranges in a fixed location with a fixed
// first day of the week.
type Calendar struct {
	loc       *time.Location
	weekStart time.Weekday
}

// NewCalendar creates a Calendar. A nil location means UTC.
func NewCalendar(loc *time.Location, weekStart time.Weekday) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc, weekStart: weekStart}
}

// Location returns the calendar's time zone.
func (c Calendar) Location() *time.Location {
	return c.loc
}

// RangeFor returns the inclusive range mode selects around anchor, or nil in
// list mode.
func (c Calendar) RangeFor(mode ViewMode, anchor time.Time) *model.TimeRange {
	switch mode {
	case ViewModeDaily:
		return &model.TimeRange{
			Start: utils.StartOfDay(anchor, c.loc),
			End:   utils.EndOfDay(anchor, c.loc),
		}
	case ViewModeWeekly:
		day := utils.StartOfDay(anchor, c.loc)
		offset := (int(day.Weekday()) - int(c.weekStart) + 7) % 7
		start := day.AddDate(0, 0, -offset)
		return &model.TimeRange{
			Start: start,
			End:   start.AddDate(0, 0, 7).Add(-time.Nanosecond),
		}
	default:
		return nil
	}
}

// Navigate moves anchor by steps days (daily) or weeks (weekly). List mode
// has no anchor movement.
func (c Calendar) Navigate(mode ViewMode, anchor time.Time, steps int) time.Time {
	local := anchor.In(c.loc)
	switch mode {
	case ViewModeDaily:
		return local.AddDate(0, 0, steps)
	case ViewModeWeekly:
		return local.AddDate(0, 0, 7*steps)
	default:
		return local
	}
}

// Today returns now in the calendar's location.
func (c Calendar) Today(now time.Time) time.Time {
	return now.In(c.loc)
}
