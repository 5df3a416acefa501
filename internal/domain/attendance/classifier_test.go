package attendance

import (
	"testing"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

var generalShift = schedule.ShiftWindow{
	Label: "General",
	Start: schedule.TimeOfDay{Hour: 10, Minute: 0},
	End:   schedule.TimeOfDay{Hour: 19, Minute: 0},
}

// at builds an instant on a fixed working Monday.
func at(hour, minute int) *time.Time {
	t := time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestClassify_MissingInstantIsAbsent(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, StatusAbsent, Classify(generalShift, nil, nil, th))
	assert.Equal(t, StatusAbsent, Classify(generalShift, at(10, 0), nil, th))
	assert.Equal(t, StatusAbsent, Classify(generalShift, nil, at(19, 0), th))
}

func TestClassify_FullDayOnTime(t *testing.T) {
	got := Classify(generalShift, at(10, 0), at(19, 0), DefaultThresholds())
	assert.Equal(t, StatusPresent, got)
}

func TestClassify_LatenessBoundary(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
		want     DayStatus
	}{
		{"six minutes late is within grace", at(10, 6), at(19, 6), StatusPresent},
		{"seven minutes late is flagged", at(10, 7), at(19, 7), StatusLateMark},
		{"seven minutes late with full nine hours still flagged", at(10, 7), at(19, 30), StatusLateMark},
		{"early arrival is not late", at(9, 30), at(19, 0), StatusPresent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(generalShift, c.checkIn, c.checkOut, th))
		})
	}
}

func TestClassify_HalfDaySecond(t *testing.T) {
	// 10:00-15:00: worked 300 of 540, missing 240, exactly at the
	// band's lower edge, all of it at the end of the shift.
	got := Classify(generalShift, at(10, 0), at(15, 0), DefaultThresholds())
	assert.Equal(t, StatusHalfDaySecond, got)
}

func TestClassify_HalfDayFirst(t *testing.T) {
	// 14:00-19:00: the symmetric case, the missing 240 minutes all at
	// the start. A missed first half reads as a half day, not a late
	// mark.
	got := Classify(generalShift, at(14, 0), at(19, 0), DefaultThresholds())
	assert.Equal(t, StatusHalfDayFirst, got)
}

func TestClassify_HalfDayUpperEdge(t *testing.T) {
	// Missing 270 minutes (the band's upper edge), concentrated at the
	// end: 10:00-14:30.
	got := Classify(generalShift, at(10, 0), at(14, 30), DefaultThresholds())
	assert.Equal(t, StatusHalfDaySecond, got)
}

func TestClassify_MissingBeyondBandFallsThroughToPresent(t *testing.T) {
	// 10:00-13:00: missing 360 minutes, beyond the half-day band. The
	// policy gives the benefit of the doubt.
	got := Classify(generalShift, at(10, 0), at(13, 0), DefaultThresholds())
	assert.Equal(t, StatusPresent, got)
}

func TestClassify_SplitGapWithinBand(t *testing.T) {
	// Late by 30 and gone 220 early: missing 250 is in the band but
	// neither gap reaches half a day, so the late mark applies.
	got := Classify(generalShift, at(10, 30), at(15, 20), DefaultThresholds())
	assert.Equal(t, StatusLateMark, got)
}

func TestClassify_OvernightShift(t *testing.T) {
	night := schedule.ShiftWindow{
		Label: "Night",
		Start: schedule.TimeOfDay{Hour: 22, Minute: 0},
		End:   schedule.TimeOfDay{Hour: 6, Minute: 0},
	}

	in := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusPresent, Classify(night, &in, &out, DefaultThresholds()))

	// Leaving at 02:00 misses 240 minutes at the end of the window.
	earlyOut := time.Date(2025, 3, 11, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusHalfDaySecond, Classify(night, &in, &earlyOut, DefaultThresholds()))
}

func TestClassify_SubMinutePrecisionTruncates(t *testing.T) {
	// 6 minutes 30 seconds late truncates to 6 whole minutes: in grace.
	in := time.Date(2025, 3, 10, 10, 6, 30, 0, time.UTC)
	out := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusPresent, Classify(generalShift, &in, &out, DefaultThresholds()))
}
