package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

const (
	testEmployeeID   = "11111111-1111-1111-1111-111111111111"
	testDepartmentID = "22222222-2222-2222-2222-222222222222"
	testUserID       = "33333333-3333-3333-3333-333333333333"
)

var testThresholds = attendance.Thresholds{LateMark: 6, HalfDayMin: 240, HalfDayMax: 270}

// ==================== FAKES ====================

type fakePunchRepo struct {
	punches map[string]attendance.Punch
	nextID  int
}

func newFakePunchRepo() *fakePunchRepo {
	return &fakePunchRepo{punches: make(map[string]attendance.Punch)}
}

func punchKey(employeeID string, day time.Time) string {
	return employeeID + "/" + day.Format("2006-01-02")
}

func (r *fakePunchRepo) Create(_ context.Context, punch attendance.Punch) (attendance.Punch, error) {
	key := punchKey(punch.EmployeeID, punch.Day)
	if _, ok := r.punches[key]; ok {
		return attendance.Punch{}, attendance.ErrAlreadyCheckedIn
	}
	r.nextID++
	punch.ID = key
	r.punches[key] = punch
	return punch, nil
}

func (r *fakePunchRepo) GetByID(_ context.Context, id string) (attendance.Punch, error) {
	for _, p := range r.punches {
		if p.ID == id {
			return p, nil
		}
	}
	return attendance.Punch{}, attendance.ErrPunchNotFound
}

func (r *fakePunchRepo) GetByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (*attendance.Punch, error) {
	if p, ok := r.punches[punchKey(employeeID, day)]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakePunchRepo) Update(_ context.Context, punch attendance.Punch) error {
	key := punchKey(punch.EmployeeID, punch.Day)
	if _, ok := r.punches[key]; !ok {
		return attendance.ErrPunchNotFound
	}
	r.punches[key] = punch
	return nil
}

func (r *fakePunchRepo) List(_ context.Context, _ attendance.Filter) ([]attendance.Punch, int64, error) {
	var out []attendance.Punch
	for _, p := range r.punches {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePunchRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]attendance.Punch, error) {
	out := make(map[string]attendance.Punch)
	for _, p := range r.punches {
		if p.EmployeeID == employeeID && !p.Day.Before(from) && !p.Day.After(to) {
			out[p.Day.Format("2006-01-02")] = p
		}
	}
	return out, nil
}

func (r *fakePunchRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range r.punches {
		if p.CheckOut == nil && !p.Day.After(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if emp, ok := r.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEmployeeRepo) ListUserIDs(_ context.Context) ([]string, error) {
	var out []string
	for _, emp := range r.employees {
		if emp.UserID != nil {
			out = append(out, *emp.UserID)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	r.employees[emp.ID] = emp
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

type fakeDepartmentRepo struct {
	departments map[string]department.Department
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept department.Department) (department.Department, error) {
	r.departments[dept.ID] = dept
	return dept, nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	if dept, ok := r.departments[id]; ok {
		return dept, nil
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) GetByEmployeeID(_ context.Context, _ string) (department.Department, error) {
	for _, dept := range r.departments {
		return dept, nil
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]department.Department, error) {
	var out []department.Department
	for _, dept := range r.departments {
		out = append(out, dept)
	}
	return out, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, dept department.Department) error {
	r.departments[dept.ID] = dept
	return nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id string) error {
	delete(r.departments, id)
	return nil
}

type fakeOverrideRepo struct {
	overrides map[string]schedule.WeekOffOverride
}

func overrideKey(employeeID string, day time.Time) string {
	return employeeID + "/" + day.Format("2006-01-02")
}

func (r *fakeOverrideRepo) Create(_ context.Context, o schedule.WeekOffOverride) (schedule.WeekOffOverride, error) {
	key := overrideKey(o.EmployeeID, o.Day)
	if _, ok := r.overrides[key]; ok {
		return schedule.WeekOffOverride{}, schedule.ErrOverrideAlreadyExists
	}
	o.ID = key
	r.overrides[key] = o
	return o, nil
}

func (r *fakeOverrideRepo) GetByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (*schedule.WeekOffOverride, error) {
	if o, ok := r.overrides[overrideKey(employeeID, day)]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *fakeOverrideRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]schedule.WeekOffOverride, error) {
	out := make(map[string]schedule.WeekOffOverride)
	for _, o := range r.overrides {
		if o.EmployeeID == employeeID && !o.Day.Before(from) && !o.Day.After(to) {
			out[o.Day.Format("2006-01-02")] = o
		}
	}
	return out, nil
}

func (r *fakeOverrideRepo) Delete(_ context.Context, id string) error {
	delete(r.overrides, id)
	return nil
}

type fakeLeaveRepo struct {
	records map[string]leave.LeaveRecord
}

func (r *fakeLeaveRepo) Create(_ context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	record.ID = record.EmployeeID + "/" + record.Day.Format("2006-01-02")
	r.records[record.ID] = record
	return record, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRecord, error) {
	if rec, ok := r.records[id]; ok {
		return rec, nil
	}
	return leave.LeaveRecord{}, leave.ErrLeaveNotFound
}

func (r *fakeLeaveRepo) GetApprovedByEmployeeAndDay(_ context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Day.Equal(day) && rec.Status == leave.StatusApproved {
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeLeaveRepo) ListApprovedByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) (map[string]leave.LeaveRecord, error) {
	out := make(map[string]leave.LeaveRecord)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == leave.StatusApproved &&
			!rec.Day.Before(from) && !rec.Day.After(to) {
			out[rec.Day.Format("2006-01-02")] = rec
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID string, _ leave.Filter) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) List(_ context.Context, _ leave.Filter) ([]leave.LeaveRecord, int64, error) {
	var out []leave.LeaveRecord
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, record leave.LeaveRecord) error {
	existing, ok := r.records[record.ID]
	if !ok {
		return leave.ErrLeaveNotFound
	}
	if existing.Status != leave.StatusPending {
		return leave.ErrLeaveAlreadyProcessed
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	delete(r.records, id)
	return nil
}

// ==================== HELPERS ====================

func employeeContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     testUserID,
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	svc      *attendanceServiceImpl
	punches  *fakePunchRepo
	leaves   *fakeLeaveRepo
	override *fakeOverrideRepo
	location *time.Location
}

func newTestEnv(t *testing.T, weekOffDays []schedule.Weekday) *testEnv {
	t.Helper()
	location, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	calendar, err := schedule.NewCalendar([]schedule.Shift{
		{ID: "shift-1", Label: "General", Start: schedule.TimeOfDay{Hour: 9}, End: schedule.TimeOfDay{Hour: 18}},
	}, "General")
	require.NoError(t, err)

	userID := testUserID
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:           testEmployeeID,
			DepartmentID: testDepartmentID,
			FullName:     "Asha Verma",
			UserID:       &userID,
		},
	}}
	departments := &fakeDepartmentRepo{departments: map[string]department.Department{
		testDepartmentID: {ID: testDepartmentID, Name: "Engineering", WeekOffDays: weekOffDays},
	}}

	punches := newFakePunchRepo()
	overrides := &fakeOverrideRepo{overrides: make(map[string]schedule.WeekOffOverride)}
	leaves := &fakeLeaveRepo{records: make(map[string]leave.LeaveRecord)}

	svc := NewAttendanceService(
		punches, employees, departments, overrides, leaves, calendar, testThresholds, location,
	).(*attendanceServiceImpl)

	return &testEnv{svc: svc, punches: punches, leaves: leaves, override: overrides, location: location}
}

// at builds an instant on the given date in the test timezone.
func (e *testEnv) at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, e.location)
}

// ==================== TESTS ====================

func TestCheckInCheckOutFullDay(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := employeeContext(t, testEmployeeID)

	// Tuesday 2025-03-04, on time.
	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 9, 2) }
	created, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, created.Status)
	assert.Equal(t, "2025-03-04", created.Day)
	assert.Nil(t, created.CheckOut)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 18, 5) }
	closed, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, closed.Status)
	require.NotNil(t, closed.WorkedMins)
	assert.Equal(t, 543, *closed.WorkedMins)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := employeeContext(t, testEmployeeID)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 9, 0) }

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := employeeContext(t, testEmployeeID)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 18, 0) }

	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := employeeContext(t, testEmployeeID)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 9, 0) }
	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 18, 0) }
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckInWithoutEmployeeClaim(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 9, 0) }

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": testUserID,
		"role":    "admin",
		"type":    "access",
	})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.Error(t, err)
}

func TestResolveDayStatusFuture(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 4, 12, 0) }

	resp, err := env.svc.ResolveDayStatus(context.Background(), testEmployeeID, env.at(2025, time.March, 5, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusFuture, resp.Status)
}

func TestResolveDayStatusWeekOffBeatsPunch(t *testing.T) {
	// Sunday is the department week-off.
	env := newTestEnv(t, []schedule.Weekday{schedule.Sunday})
	ctx := employeeContext(t, testEmployeeID)

	// Sunday 2025-03-02: the employee punches anyway.
	env.svc.now = func() time.Time { return env.at(2025, time.March, 2, 9, 0) }
	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 3, 12, 0) }
	resp, err := env.svc.ResolveDayStatus(context.Background(), testEmployeeID, env.at(2025, time.March, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWeekOff, resp.Status)
}

func TestResolveDayStatusApprovedLeave(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.leaves.Create(context.Background(), leave.LeaveRecord{
		EmployeeID: testEmployeeID,
		Day:        env.at(2025, time.March, 4, 0, 0),
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 5, 12, 0) }
	resp, err := env.svc.ResolveDayStatus(context.Background(), testEmployeeID, env.at(2025, time.March, 4, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, resp.Status)
}

func TestSummaryCounts(t *testing.T) {
	env := newTestEnv(t, []schedule.Weekday{schedule.Sunday})
	ctx := employeeContext(t, testEmployeeID)

	// Monday 2025-03-03: full day.
	env.svc.now = func() time.Time { return env.at(2025, time.March, 3, 9, 0) }
	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 3, 18, 0) }
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	// Evaluated from the following Saturday.
	env.svc.now = func() time.Time { return env.at(2025, time.March, 8, 12, 0) }
	resp, err := env.svc.Summary(ctx, attendance.SummaryRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-02",
		EndDate:    "2025-03-08",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Days, 7)
	assert.Equal(t, 1, resp.Counts[attendance.StatusWeekOff])
	assert.Equal(t, 1, resp.Counts[attendance.StatusPresent])
	// Tue through Fri have no punches, Saturday is still in progress
	// but has no punch either.
	assert.Equal(t, 5, resp.Counts[attendance.StatusAbsent])
}

func TestMySummaryScopedToClaimEmployee(t *testing.T) {
	env := newTestEnv(t, []schedule.Weekday{schedule.Sunday})
	ctx := employeeContext(t, testEmployeeID)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 8, 12, 0) }
	resp, err := env.svc.MySummary(ctx, attendance.SummaryRequest{
		// An employee_id smuggled into the request is ignored.
		EmployeeID: "99999999-9999-9999-9999-999999999999",
		StartDate:  "2025-03-02",
		EndDate:    "2025-03-08",
	})
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Len(t, resp.Days, 7)
	assert.Equal(t, 1, resp.Counts[attendance.StatusWeekOff])
	assert.Equal(t, 6, resp.Counts[attendance.StatusAbsent])
}

func TestMySummaryWithoutEmployeeClaim(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 8, 12, 0) }

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": testUserID,
		"role":    "admin",
		"type":    "access",
	})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = env.svc.MySummary(ctx, attendance.SummaryRequest{
		StartDate: "2025-03-02",
		EndDate:   "2025-03-08",
	})
	assert.Error(t, err)
}

func TestMyDayStatus(t *testing.T) {
	env := newTestEnv(t, []schedule.Weekday{schedule.Sunday})
	ctx := employeeContext(t, testEmployeeID)

	env.svc.now = func() time.Time { return env.at(2025, time.March, 3, 12, 0) }
	resp, err := env.svc.MyDayStatus(ctx, env.at(2025, time.March, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Equal(t, attendance.StatusWeekOff, resp.Status)
}

func TestSummaryRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := employeeContext(t, testEmployeeID)
	env.svc.now = func() time.Time { return env.at(2025, time.March, 8, 12, 0) }

	_, err := env.svc.Summary(ctx, attendance.SummaryRequest{
		EmployeeID: testEmployeeID,
		StartDate:  "2025-03-08",
		EndDate:    "2025-03-02",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)
}
