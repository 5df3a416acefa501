package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftWindow_Anchor(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	ref := time.Date(2025, 3, 10, 10, 3, 0, 0, loc)

	w := ShiftWindow{Label: "General", Start: TimeOfDay{10, 0}, End: TimeOfDay{19, 0}}
	start, end := w.Anchor(ref)

	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 10, 19, 0, 0, 0, loc), end)
	assert.Equal(t, 540, w.DurationMinutes())
}

func TestShiftWindow_AnchorOvernight(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2025, 3, 10, 22, 30, 0, 0, loc)

	// 22:00 to 06:00 crosses midnight; end lands on the next day.
	w := ShiftWindow{Label: "Night", Start: TimeOfDay{22, 0}, End: TimeOfDay{6, 0}}
	start, end := w.Anchor(ref)

	assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 11, 6, 0, 0, 0, loc), end)
	assert.Equal(t, 480, w.DurationMinutes())
}

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input string
		want  Weekday
	}{
		{"monday", Monday},
		{"Sunday", Sunday},
		{"  friday ", Friday},
	}
	for _, c := range cases {
		got, err := ParseWeekday(c.input)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}

	_, err := ParseWeekday("funday")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	// 2025-03-09 is a Sunday, 2025-03-10 a Monday.
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Saturday, WeekdayOf(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestCalendar_ResolveShift(t *testing.T) {
	shifts := []Shift{
		{ID: "1", Label: "General", Start: TimeOfDay{10, 0}, End: TimeOfDay{19, 0}},
		{ID: "2", Label: "Evening", Start: TimeOfDay{13, 15}, End: TimeOfDay{22, 15}},
	}

	cal, err := NewCalendar(shifts, "General")
	require.NoError(t, err)

	evening := "Evening"
	assert.Equal(t, "Evening", cal.ResolveShift(&evening).Label)

	// Nil and unknown assignments fall back to the default window.
	assert.Equal(t, "General", cal.ResolveShift(nil).Label)
	unknown := "Ghost"
	assert.Equal(t, "General", cal.ResolveShift(&unknown).Label)
}

func TestNewCalendar_MissingDefaultFailsLoudly(t *testing.T) {
	shifts := []Shift{
		{ID: "1", Label: "Evening", Start: TimeOfDay{13, 15}, End: TimeOfDay{22, 15}},
	}

	_, err := NewCalendar(shifts, "General")
	assert.ErrorIs(t, err, ErrDefaultShiftMissing)
}

func TestCalendar_ReloadKeepsDefaultInvariant(t *testing.T) {
	cal, err := NewCalendar([]Shift{
		{ID: "1", Label: "General", Start: TimeOfDay{10, 0}, End: TimeOfDay{19, 0}},
	}, "General")
	require.NoError(t, err)

	err = cal.Reload([]Shift{
		{ID: "2", Label: "Evening", Start: TimeOfDay{14, 0}, End: TimeOfDay{22, 30}},
	})
	assert.ErrorIs(t, err, ErrDefaultShiftMissing)

	// The previous table must survive a rejected reload.
	assert.Equal(t, "General", cal.ResolveShift(nil).Label)
}
