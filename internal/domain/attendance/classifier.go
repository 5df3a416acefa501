package attendance

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

// Thresholds are the numeric knobs of day classification, in minutes.
type Thresholds struct {
	// LateMark is the grace period after shift start; arriving later
	// flags the day.
	LateMark int
	// HalfDayMin..HalfDayMax is the band of missing minutes treated as
	// half a day.
	HalfDayMin int
	HalfDayMax int
}

// DefaultThresholds returns the stock policy: 6 minutes of grace, a
// half day when 4h to 4h30m of the shift is missing.
func DefaultThresholds() Thresholds {
	return Thresholds{LateMark: 6, HalfDayMin: 240, HalfDayMax: 270}
}

// Classify derives the worked-day outcome from one punch pair against a
// shift window. It is total: every input combination maps to a status,
// never an error. Callers must not pass an in-progress day (check-in
// without check-out); that state is reported separately.
//
// A missing instant is an absence. Otherwise the window is anchored on
// the check-in's calendar day and the day is judged at minute
// granularity:
//
//   - missing time within the half-day band, concentrated at either end
//     of the shift → the corresponding half day
//   - arrival past the grace period → late mark
//   - everything else → present
//
// The half-day band is checked before the late mark so that missing an
// entire half (a four-hour-late arrival) reads as a half day rather
// than a mere late flag. Missing time beyond the band, and band-sized
// gaps split across the day, get the benefit of the doubt.
func Classify(shift schedule.ShiftWindow, checkIn, checkOut *time.Time, th Thresholds) DayStatus {
	if checkIn == nil || checkOut == nil {
		return StatusAbsent
	}

	shiftStart, shiftEnd := shift.Anchor(*checkIn)

	lateMinutes := minutesBetween(shiftStart, *checkIn)
	workedMinutes := minutesBetween(*checkIn, *checkOut)
	shiftMinutes := minutesBetween(shiftStart, shiftEnd)
	missingMinutes := shiftMinutes - workedMinutes

	if missingMinutes >= th.HalfDayMin && missingMinutes <= th.HalfDayMax {
		earlyGap := lateMinutes
		lateGap := minutesBetween(*checkOut, shiftEnd)
		switch {
		case earlyGap >= th.HalfDayMin:
			return StatusHalfDayFirst
		case lateGap >= th.HalfDayMin:
			return StatusHalfDaySecond
		}
		// Missing time split across the day rather than concentrated at
		// one end: fall through.
	}

	if lateMinutes > th.LateMark {
		return StatusLateMark
	}

	return StatusPresent
}

// minutesBetween returns whole minutes from a to b, negative when b
// precedes a. Integer arithmetic only; no float accumulation.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}
