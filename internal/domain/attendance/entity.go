package attendance

import (
	"time"
)

// Punch is the raw attendance record for one employee on one calendar
// day. A row is created at check-in and mutated exactly once at
// check-out; the (employee_id, day) pair is unique in the store.
type Punch struct {
	ID                string
	EmployeeID        string
	Day               time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// DayStatus is the single authoritative classification of one
// employee's one calendar day. It is derived on read and never stored.
type DayStatus string

const (
	StatusPresent       DayStatus = "present"
	StatusLateMark      DayStatus = "late_mark"
	StatusHalfDayFirst  DayStatus = "half_day_first"
	StatusHalfDaySecond DayStatus = "half_day_second"
	StatusAbsent        DayStatus = "absent"
	StatusOnLeave       DayStatus = "on_leave"
	StatusWeekOff       DayStatus = "week_off"
	StatusFuture        DayStatus = "future"
	// StatusCheckedIn marks an in-progress day: checked in, not yet
	// checked out. Distinct from absent so live dashboards can show it.
	StatusCheckedIn DayStatus = "checked_in"
)

// AllDayStatuses returns every derivable status, in summary order.
func AllDayStatuses() []DayStatus {
	return []DayStatus{
		StatusPresent,
		StatusLateMark,
		StatusHalfDayFirst,
		StatusHalfDaySecond,
		StatusAbsent,
		StatusOnLeave,
		StatusWeekOff,
		StatusCheckedIn,
		StatusFuture,
	}
}
