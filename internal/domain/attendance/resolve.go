package attendance

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

// DayContext carries the already-fetched records needed to resolve one
// (employee, day). The resolver itself performs no I/O.
type DayContext struct {
	// Day is the calendar day being resolved, at midnight in the
	// company timezone.
	Day time.Time
	// Shift is the employee's resolved shift window for Day.
	Shift schedule.ShiftWindow
	// Override, when non-nil, is the IsWeekOff flag of an explicit
	// week-off override for this employee and day.
	Override *bool
	// WeekOffDays is the employee's department default week-off set.
	WeekOffDays []schedule.Weekday
	// LeaveApproved reports an approved leave record for this day.
	// Pending and rejected requests are invisible here.
	LeaveApproved bool
	// Punch is the raw attendance record for the day, if any.
	Punch      *Punch
	Thresholds Thresholds
}

// ResolveDay computes the authoritative DayStatus for one employee-day.
// Precedence, highest first: future day, week-off (override beats the
// department default and an override decides week-off-ness entirely),
// approved leave, punch (in progress or classified), absent. Week-off
// is authoritative over any punch that happens to exist. The evaluation
// instant is an explicit parameter so the function stays pure.
func ResolveDay(c DayContext, now time.Time) DayStatus {
	if isFutureDay(c.Day, now) {
		return StatusFuture
	}

	if c.Override != nil {
		if *c.Override {
			return StatusWeekOff
		}
		// Explicitly a working day; the department default is bypassed.
	} else if weekOffContains(c.WeekOffDays, schedule.WeekdayOf(c.Day)) {
		return StatusWeekOff
	}

	if c.LeaveApproved {
		return StatusOnLeave
	}

	if c.Punch != nil {
		if c.Punch.CheckOut == nil {
			return StatusCheckedIn
		}
		return Classify(c.Shift, c.Punch.CheckIn, c.Punch.CheckOut, c.Thresholds)
	}

	return StatusAbsent
}

// isFutureDay compares civil dates in the day's own location; today is
// never a future day.
func isFutureDay(day, now time.Time) bool {
	nowLocal := now.In(day.Location())
	dy, dm, dd := day.Date()
	ny, nm, nd := nowLocal.Date()
	if dy != ny {
		return dy > ny
	}
	if dm != nm {
		return dm > nm
	}
	return dd > nd
}

func weekOffContains(days []schedule.Weekday, d schedule.Weekday) bool {
	for _, wd := range days {
		if wd == d {
			return true
		}
	}
	return false
}
