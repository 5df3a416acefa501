package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/report"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

const (
	testEmployeeID   = "11111111-1111-1111-1111-111111111111"
	testDepartmentID = "22222222-2222-2222-2222-222222222222"
)

// ==================== FAKES ====================

type stubEmployeeRepo struct {
	employees []employee.Employee
}

func (r *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (r *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) GetByUserID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) List(context.Context, employee.Filter) ([]employee.Employee, int64, error) {
	return r.employees, int64(len(r.employees)), nil
}

func (r *stubEmployeeRepo) ListUserIDs(context.Context) ([]string, error) { return nil, nil }

func (r *stubEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

func (r *stubEmployeeRepo) Delete(context.Context, string) error { return nil }

type stubDepartmentRepo struct {
	departments map[string]department.Department
}

func (r *stubDepartmentRepo) Create(_ context.Context, dept department.Department) (department.Department, error) {
	return dept, nil
}

func (r *stubDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	if dept, ok := r.departments[id]; ok {
		return dept, nil
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *stubDepartmentRepo) GetByEmployeeID(context.Context, string) (department.Department, error) {
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *stubDepartmentRepo) List(context.Context) ([]department.Department, error) {
	return nil, nil
}

func (r *stubDepartmentRepo) Update(context.Context, department.Department) error { return nil }

func (r *stubDepartmentRepo) Delete(context.Context, string) error { return nil }

type stubPunchRepo struct {
	punches map[string]attendance.Punch
}

func (r *stubPunchRepo) Create(_ context.Context, p attendance.Punch) (attendance.Punch, error) {
	return p, nil
}

func (r *stubPunchRepo) GetByID(context.Context, string) (attendance.Punch, error) {
	return attendance.Punch{}, attendance.ErrPunchNotFound
}

func (r *stubPunchRepo) GetByEmployeeAndDay(context.Context, string, time.Time) (*attendance.Punch, error) {
	return nil, nil
}

func (r *stubPunchRepo) Update(context.Context, attendance.Punch) error { return nil }

func (r *stubPunchRepo) List(context.Context, attendance.Filter) ([]attendance.Punch, int64, error) {
	return nil, 0, nil
}

func (r *stubPunchRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]attendance.Punch, error) {
	out := make(map[string]attendance.Punch)
	for key, p := range r.punches {
		if p.EmployeeID == employeeID && !p.Day.Before(from) && !p.Day.After(to) {
			out[key] = p
		}
	}
	return out, nil
}

func (r *stubPunchRepo) ListOpenBefore(context.Context, time.Time) ([]attendance.Punch, error) {
	return nil, nil
}

type stubOverrideRepo struct {
	overrides map[string]schedule.WeekOffOverride
}

func (r *stubOverrideRepo) Create(_ context.Context, o schedule.WeekOffOverride) (schedule.WeekOffOverride, error) {
	return o, nil
}

func (r *stubOverrideRepo) GetByEmployeeAndDay(context.Context, string, time.Time) (*schedule.WeekOffOverride, error) {
	return nil, nil
}

func (r *stubOverrideRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]schedule.WeekOffOverride, error) {
	out := make(map[string]schedule.WeekOffOverride)
	for key, o := range r.overrides {
		if o.EmployeeID == employeeID && !o.Day.Before(from) && !o.Day.After(to) {
			out[key] = o
		}
	}
	return out, nil
}

func (r *stubOverrideRepo) Delete(context.Context, string) error { return nil }

type stubLeaveRepo struct {
	approved map[string]leave.LeaveRecord
}

func (r *stubLeaveRepo) Create(_ context.Context, rec leave.LeaveRecord) (leave.LeaveRecord, error) {
	return rec, nil
}

func (r *stubLeaveRepo) GetByID(context.Context, string) (leave.LeaveRecord, error) {
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (r *stubLeaveRepo) GetApprovedByEmployeeAndDay(context.Context, string, time.Time) (*leave.LeaveRecord, error) {
	return nil, nil
}

func (r *stubLeaveRepo) ListApprovedByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]leave.LeaveRecord, error) {
	out := make(map[string]leave.LeaveRecord)
	for key, rec := range r.approved {
		if rec.EmployeeID == employeeID && !rec.Day.Before(from) && !rec.Day.After(to) {
			out[key] = rec
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) ListByEmployee(context.Context, string, leave.Filter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (r *stubLeaveRepo) List(context.Context, leave.Filter) ([]leave.LeaveRecord, int64, error) {
	return nil, 0, nil
}

func (r *stubLeaveRepo) UpdateStatus(context.Context, leave.LeaveRecord) error { return nil }

func (r *stubLeaveRepo) Delete(context.Context, string) error { return nil }

// ==================== HELPERS ====================

// newMarchService wires a single employee with Sunday week-offs, one
// completed punch on Mar 3, an approved leave on Mar 4, a granted
// week-off override on Mar 5 and a cancelled week-off on Sunday Mar 9.
// "Now" is fixed at 2025-03-15, so Mar 16..31 resolve as future.
func newMarchService(t *testing.T) *reportServiceImpl {
	t.Helper()
	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, location)
	}
	instant := func(d, h, min int) time.Time {
		return time.Date(2025, time.March, d, h, min, 0, 0, location)
	}

	employees := &stubEmployeeRepo{employees: []employee.Employee{
		{ID: testEmployeeID, DepartmentID: testDepartmentID, FullName: "Asha Verma"},
	}}
	departments := &stubDepartmentRepo{departments: map[string]department.Department{
		testDepartmentID: {ID: testDepartmentID, Name: "Engineering", WeekOffDays: []schedule.Weekday{schedule.Sunday}},
	}}

	checkIn := instant(3, 9, 0)
	checkOut := instant(3, 18, 0)
	punches := &stubPunchRepo{punches: map[string]attendance.Punch{
		"2025-03-03": {ID: "p-1", EmployeeID: testEmployeeID, Day: day(3), CheckIn: &checkIn, CheckOut: &checkOut},
	}}

	overrides := &stubOverrideRepo{overrides: map[string]schedule.WeekOffOverride{
		"2025-03-05": {ID: "o-1", EmployeeID: testEmployeeID, Day: day(5), IsWeekOff: true},
		"2025-03-09": {ID: "o-2", EmployeeID: testEmployeeID, Day: day(9), IsWeekOff: false},
	}}

	leaves := &stubLeaveRepo{approved: map[string]leave.LeaveRecord{
		"2025-03-04": {ID: "l-1", EmployeeID: testEmployeeID, Day: day(4), Status: leave.StatusApproved},
	}}

	calendar, err := schedule.NewCalendar([]schedule.Shift{
		{ID: "shift-1", Label: "General", Start: schedule.TimeOfDay{Hour: 9}, End: schedule.TimeOfDay{Hour: 18}},
	}, "General")
	require.NoError(t, err)

	svc := NewReportService(
		employees,
		departments,
		punches,
		overrides,
		leaves,
		calendar,
		attendance.DefaultThresholds(),
		location,
	).(*reportServiceImpl)
	svc.now = func() time.Time { return instant(15, 12, 0) }
	return svc
}

// ==================== TESTS ====================

func TestMonthlyReportCounts(t *testing.T) {
	svc := newMarchService(t)

	resp, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	row := resp.Rows[0]
	assert.Equal(t, testEmployeeID, row.EmployeeID)
	assert.Equal(t, "General", row.ShiftLabel)
	require.Len(t, row.Days, 31)

	assert.Equal(t, 1, row.Counts[attendance.StatusPresent])
	assert.Equal(t, 1, row.Counts[attendance.StatusOnLeave])
	// Sundays Mar 2 and the granted override Mar 5; the cancelled
	// Sunday Mar 9 counts as a working day instead.
	assert.Equal(t, 2, row.Counts[attendance.StatusWeekOff])
	assert.Equal(t, 11, row.Counts[attendance.StatusAbsent])
	assert.Equal(t, 16, row.Counts[attendance.StatusFuture])
}

func TestMonthlyReportDayPrecedence(t *testing.T) {
	svc := newMarchService(t)

	resp, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	days := resp.Rows[0].Days

	byDate := make(map[string]report.DayCell, len(days))
	for _, cell := range days {
		byDate[cell.Day.Format("2006-01-02")] = cell
	}

	assert.Equal(t, attendance.StatusWeekOff, byDate["2025-03-02"].Status)
	assert.Equal(t, attendance.StatusPresent, byDate["2025-03-03"].Status)
	assert.Equal(t, attendance.StatusOnLeave, byDate["2025-03-04"].Status)
	assert.Equal(t, attendance.StatusWeekOff, byDate["2025-03-05"].Status)
	assert.Equal(t, attendance.StatusAbsent, byDate["2025-03-09"].Status)
	assert.Equal(t, attendance.StatusFuture, byDate["2025-03-16"].Status)
	assert.Equal(t, attendance.StatusFuture, byDate["2025-03-31"].Status)

	present := byDate["2025-03-03"]
	require.NotNil(t, present.CheckIn)
	require.NotNil(t, present.CheckOut)
	assert.Equal(t, "09:00", present.CheckIn.Format("15:04"))
	assert.Equal(t, "18:00", present.CheckOut.Format("15:04"))
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc := newMarchService(t)

	_, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 13})
	assert.Error(t, err)
}

func TestMonthlyReportUnknownEmployee(t *testing.T) {
	svc := newMarchService(t)

	unknown := "99999999-9999-9999-9999-999999999999"
	_, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{
		Year: 2025, Month: 3, EmployeeID: &unknown,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportCSV(t *testing.T) {
	svc := newMarchService(t)

	result, err := svc.Export(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3}, report.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "attendance_2025_03.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 32)
	assert.Equal(t, "Employee ID,Employee Name,Shift,Day,Status,Check In,Check Out", strings.TrimSpace(lines[0]))
	assert.Contains(t, string(result.Content), "2025-03-03,present,09:00:00,18:00:00")
}

func TestExportXLSX(t *testing.T) {
	svc := newMarchService(t)

	result, err := svc.Export(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3}, report.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, "attendance_2025_03.xlsx", result.FileName)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.ContentType)
	assert.NotEmpty(t, result.Content)
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newMarchService(t)

	_, err := svc.Export(context.Background(), report.MonthlyReportRequest{Year: 2025, Month: 3}, report.ExportFormat("pdf"))
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}
