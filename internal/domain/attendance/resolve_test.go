package attendance

import (
	"testing"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

// day returns midnight of 2025-03-10+offset (a Monday) in UTC.
func day(offset int) time.Time {
	return time.Date(2025, 3, 10+offset, 0, 0, 0, 0, time.UTC)
}

func workedPunch(d time.Time) *Punch {
	in := d.Add(10 * time.Hour)
	out := d.Add(19 * time.Hour)
	return &Punch{EmployeeID: "emp-1", Day: d, CheckIn: &in, CheckOut: &out}
}

func baseContext(d time.Time) DayContext {
	return DayContext{
		Day:         d,
		Shift:       generalShift,
		WeekOffDays: []schedule.Weekday{schedule.Sunday},
		Thresholds:  DefaultThresholds(),
	}
}

var evalNow = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

func TestResolveDay_FutureBeatsEverything(t *testing.T) {
	c := baseContext(day(3)) // 2025-03-13, after evalNow
	c.Override = boolPtr(true)
	c.LeaveApproved = true
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusFuture, ResolveDay(c, evalNow))
}

func TestResolveDay_TodayIsNotFuture(t *testing.T) {
	c := baseContext(day(2)) // same civil date as evalNow
	assert.Equal(t, StatusAbsent, ResolveDay(c, evalNow))
}

func TestResolveDay_DepartmentWeekOffBeatsPunch(t *testing.T) {
	// 2025-03-09 is a Sunday: department week-off even with a punch.
	c := baseContext(day(-1))
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusWeekOff, ResolveDay(c, evalNow))
}

func TestResolveDay_OverrideGrantsWeekOff(t *testing.T) {
	c := baseContext(day(0)) // a Monday
	c.Override = boolPtr(true)
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusWeekOff, ResolveDay(c, evalNow))
}

func TestResolveDay_OverrideCancelsDefaultWeekOff(t *testing.T) {
	// Sunday, but the override says this employee works it.
	c := baseContext(day(-1))
	c.Override = boolPtr(false)
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusPresent, ResolveDay(c, evalNow))
}

func TestResolveDay_ApprovedLeaveBeatsPunch(t *testing.T) {
	c := baseContext(day(0))
	c.LeaveApproved = true
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusOnLeave, ResolveDay(c, evalNow))
}

func TestResolveDay_PendingLeaveDoesNotSuppressClassification(t *testing.T) {
	// LeaveApproved=false models pending/rejected requests: the punch
	// still classifies.
	c := baseContext(day(0))
	c.Punch = workedPunch(c.Day)

	assert.Equal(t, StatusPresent, ResolveDay(c, evalNow))
}

func TestResolveDay_OpenPunchIsInProgress(t *testing.T) {
	c := baseContext(day(2))
	in := c.Day.Add(10 * time.Hour)
	c.Punch = &Punch{EmployeeID: "emp-1", Day: c.Day, CheckIn: &in}

	assert.Equal(t, StatusCheckedIn, ResolveDay(c, evalNow))
}

func TestResolveDay_ClassifierOutcomePassesThrough(t *testing.T) {
	c := baseContext(day(0))
	in := c.Day.Add(10 * time.Hour)
	out := c.Day.Add(15 * time.Hour)
	c.Punch = &Punch{EmployeeID: "emp-1", Day: c.Day, CheckIn: &in, CheckOut: &out}

	assert.Equal(t, StatusHalfDaySecond, ResolveDay(c, evalNow))
}

func TestResolveDay_NoRecordsInPastIsAbsent(t *testing.T) {
	c := baseContext(day(0))
	assert.Equal(t, StatusAbsent, ResolveDay(c, evalNow))
}

func TestResolveDay_Idempotent(t *testing.T) {
	c := baseContext(day(0))
	c.Punch = workedPunch(c.Day)

	first := ResolveDay(c, evalNow)
	second := ResolveDay(c, evalNow)
	assert.Equal(t, first, second)
}
