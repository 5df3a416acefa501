package schedule

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock (hour, minute) pair with no date component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses an "HH:MM" wall-clock string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// MinuteOfDay returns minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.MinuteOfDay() < u.MinuteOfDay()
}

// ShiftWindow is the expected start/end wall-clock range an employee is
// scheduled to work under a named shift.
type ShiftWindow struct {
	Label string
	Start TimeOfDay
	End   TimeOfDay
}

// Anchor pins the window onto the calendar day of ref, in ref's
// location. When End is before Start the shift crosses midnight and the
// end instant lands on the next calendar day.
func (w ShiftWindow) Anchor(ref time.Time) (start, end time.Time) {
	year, month, day := ref.Date()
	loc := ref.Location()

	start = time.Date(year, month, day, w.Start.Hour, w.Start.Minute, 0, 0, loc)
	end = time.Date(year, month, day, w.End.Hour, w.End.Minute, 0, 0, loc)
	if w.End.Before(w.Start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

// DurationMinutes returns the scheduled length of the window.
func (w ShiftWindow) DurationMinutes() int {
	d := w.End.MinuteOfDay() - w.Start.MinuteOfDay()
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// Shift is a stored named shift window.
type Shift struct {
	ID        string
	Label     string
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Shift) Window() ShiftWindow {
	return ShiftWindow{Label: s.Label, Start: s.Start, End: s.End}
}

// Weekday is a closed Monday..Sunday enum. The stored representation is
// 1=Monday .. 7=Sunday; weekday-name strings only exist at the API edge.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("weekday(%d)", int(d))
}

// IsValid reports whether d is one of the seven defined values.
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday maps a lowercase weekday name to its enum value.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range weekdayNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayOf converts a time.Time weekday (Sunday=0) to the 1..7 enum.
func WeekdayOf(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return Weekday(wd)
}

// WeekOffOverride is an explicit exception to the department week-off
// calendar for one employee on one day. IsWeekOff=false cancels a
// default week-off; IsWeekOff=true grants one.
type WeekOffOverride struct {
	ID         string
	EmployeeID string
	Day        time.Time
	IsWeekOff  bool
	Note       *string
	CreatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
