package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in   string
		want ViewMode
	}{
		{"", ViewModeDaily},
		{"daily", ViewModeDaily},
		{"agenda-daily", ViewModeDaily},
		{"Weekly", ViewModeWeekly},
		{"agenda-weekly", ViewModeWeekly},
		{"list", ViewModeList},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseViewMode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseViewMode("monthly")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCalendar_DailyRange(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	anchor := time.Date(2024, 5, 15, 17, 30, 0, 0, saoPaulo)

	rng := cal.RangeFor(ViewModeDaily, anchor)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, saoPaulo), rng.Start)
	assert.Equal(t, time.Date(2024, 5, 15, 23, 59, 59, 999999999, saoPaulo), rng.End)

	// Both bounds are inclusive.
	assert.True(t, rng.Contains(rng.Start))
	assert.True(t, rng.Contains(time.Date(2024, 5, 15, 23, 59, 59, 0, saoPaulo)))
	assert.False(t, rng.Contains(rng.Start.Add(-time.Nanosecond)))
	assert.False(t, rng.Contains(time.Date(2024, 5, 16, 0, 0, 0, 0, saoPaulo)))
}

func TestCalendar_DailyRangeUsesCalendarLocation(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	// 01:00 UTC on the 16th is 22:00 on the 15th in BRT.
	anchor := time.Date(2024, 5, 16, 1, 0, 0, 0, time.UTC)

	rng := cal.RangeFor(ViewModeDaily, anchor)
	require.NotNil(t, rng)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, saoPaulo), rng.Start)
}

func TestCalendar_WeeklyRange(t *testing.T) {
	// Wednesday 2024-05-15.
	anchor := time.Date(2024, 5, 15, 10, 0, 0, 0, saoPaulo)

	t.Run("sunday start", func(t *testing.T) {
		rng := NewCalendar(saoPaulo, time.Sunday).RangeFor(ViewModeWeekly, anchor)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, saoPaulo), rng.Start)
		assert.Equal(t, time.Date(2024, 5, 18, 23, 59, 59, 999999999, saoPaulo), rng.End)
	})

	t.Run("monday start", func(t *testing.T) {
		rng := NewCalendar(saoPaulo, time.Monday).RangeFor(ViewModeWeekly, anchor)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, saoPaulo), rng.Start)
		assert.Equal(t, time.Date(2024, 5, 19, 23, 59, 59, 999999999, saoPaulo), rng.End)
	})

	t.Run("anchor on week start", func(t *testing.T) {
		sunday := time.Date(2024, 5, 12, 0, 0, 0, 0, saoPaulo)
		rng := NewCalendar(saoPaulo, time.Sunday).RangeFor(ViewModeWeekly, sunday)
		require.NotNil(t, rng)
		assert.Equal(t, sunday, rng.Start)
	})

	t.Run("week spanning month end", func(t *testing.T) {
		friday := time.Date(2024, 5, 31, 9, 0, 0, 0, saoPaulo)
		rng := NewCalendar(saoPaulo, time.Sunday).RangeFor(ViewModeWeekly, friday)
		require.NotNil(t, rng)
		assert.Equal(t, time.Date(2024, 5, 26, 0, 0, 0, 0, saoPaulo), rng.Start)
		assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 999999999, saoPaulo), rng.End)
	})
}

func TestCalendar_ListModeHasNoRange(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	assert.Nil(t, cal.RangeFor(ViewModeList, time.Now()))
}

func TestCalendar_SevenDailyStepsEqualOneWeeklyStep(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	anchors := []time.Time{
		time.Date(2024, 5, 15, 10, 0, 0, 0, saoPaulo),
		time.Date(2024, 2, 26, 0, 0, 0, 0, saoPaulo),  // crosses Feb 29
		time.Date(2024, 12, 28, 23, 0, 0, 0, saoPaulo), // crosses the year
	}

	for _, anchor := range anchors {
		for _, dir := range []int{1, -1} {
			daily := anchor
			for i := 0; i < 7; i++ {
				daily = cal.Navigate(ViewModeDaily, daily, dir)
			}
			weekly := cal.Navigate(ViewModeWeekly, anchor, dir)

			dy, dm, dd := daily.Date()
			wy, wm, wd := weekly.Date()
			assert.Equal(t, []int{wy, int(wm), wd}, []int{dy, int(dm), dd}, "anchor %s dir %d", anchor, dir)
		}
	}
}

func TestCalendar_NavigateListModeIsNoop(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	anchor := time.Date(2024, 5, 15, 10, 0, 0, 0, saoPaulo)
	assert.True(t, anchor.Equal(cal.Navigate(ViewModeList, anchor, 1)))
}

func TestCalendar_Today(t *testing.T) {
	cal := NewCalendar(saoPaulo, time.Sunday)
	now := time.Date(2024, 5, 16, 1, 0, 0, 0, time.UTC)
	today := cal.Today(now)
	assert.True(t, now.Equal(today))
	assert.Equal(t, saoPaulo, today.Location())
}

func TestNewCalendar_NilLocation(t *testing.T) {
	cal := NewCalendar(nil, time.Sunday)
	assert.Equal(t, time.UTC, cal.Location())
}
