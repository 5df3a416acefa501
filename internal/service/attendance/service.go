package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
)

type attendanceServiceImpl struct {
	punchRepo      attendance.PunchRepository
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	overrideRepo   schedule.WeekOffOverrideRepository
	leaveRepo      leave.LeaveRepository
	calendar       *schedule.Calendar
	thresholds     attendance.Thresholds
	location       *time.Location

	// now is swappable in tests.
	now func() time.Time
}

func NewAttendanceService(
	punchRepo attendance.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	overrideRepo schedule.WeekOffOverrideRepository,
	leaveRepo leave.LeaveRepository,
	calendar *schedule.Calendar,
	thresholds attendance.Thresholds,
	location *time.Location,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		punchRepo:      punchRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		overrideRepo:   overrideRepo,
		leaveRepo:      leaveRepo,
		calendar:       calendar,
		thresholds:     thresholds,
		location:       location,
		now:            time.Now,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", user.ErrInsufficientPermissions
	}
	return employeeID, nil
}

// today returns midnight of the current company-timezone day.
func (s *attendanceServiceImpl) today() time.Time {
	now := s.now().In(s.location)
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, s.location)
}

func (s *attendanceServiceImpl) toPunchResponse(punch attendance.Punch, shift schedule.ShiftWindow) attendance.PunchResponse {
	resp := attendance.PunchResponse{
		ID:           punch.ID,
		EmployeeID:   punch.EmployeeID,
		EmployeeName: punch.EmployeeName,
		Day:          punch.Day.Format("2006-01-02"),
		Status:       attendance.StatusCheckedIn,
	}
	if punch.CheckIn != nil {
		in := punch.CheckIn.In(s.location).Format(time.RFC3339)
		resp.CheckIn = &in
	}
	if punch.CheckOut != nil {
		out := punch.CheckOut.In(s.location).Format(time.RFC3339)
		resp.CheckOut = &out
		worked := int(punch.CheckOut.Sub(*punch.CheckIn) / time.Minute)
		resp.WorkedMins = &worked
		resp.Status = attendance.Classify(shift, punch.CheckIn, punch.CheckOut, s.thresholds)
	}
	return resp
}

func (s *attendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	day := s.today()
	existing, err := s.punchRepo.GetByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if existing != nil {
		return attendance.PunchResponse{}, attendance.ErrAlreadyCheckedIn
	}

	now := s.now().In(s.location)
	created, err := s.punchRepo.Create(ctx, attendance.Punch{
		EmployeeID:       employeeID,
		Day:              day,
		CheckIn:          &now,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	return s.toPunchResponse(created, s.calendar.ResolveShift(emp.ShiftLabel)), nil
}

func (s *attendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	punch, err := s.punchRepo.GetByEmployeeAndDay(ctx, employeeID, s.today())
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if punch == nil {
		return attendance.PunchResponse{}, attendance.ErrNotCheckedIn
	}
	if punch.CheckOut != nil {
		return attendance.PunchResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.now().In(s.location)
	punch.CheckOut = &now
	punch.CheckOutLatitude = req.Latitude
	punch.CheckOutLongitude = req.Longitude
	if err := s.punchRepo.Update(ctx, *punch); err != nil {
		return attendance.PunchResponse{}, err
	}

	return s.toPunchResponse(*punch, s.calendar.ResolveShift(emp.ShiftLabel)), nil
}

func (s *attendanceServiceImpl) GetMyPunches(ctx context.Context, filter attendance.Filter) (attendance.ListPunchesResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ListPunchesResponse{}, err
	}
	filter.EmployeeID = &employeeID
	return s.ListPunches(ctx, filter)
}

func (s *attendanceServiceImpl) ListPunches(ctx context.Context, filter attendance.Filter) (attendance.ListPunchesResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListPunchesResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	punches, total, err := s.punchRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListPunchesResponse{}, err
	}

	// Shift lookups are cached per employee for the page.
	shifts := make(map[string]schedule.ShiftWindow)
	responses := make([]attendance.PunchResponse, 0, len(punches))
	for _, punch := range punches {
		shift, ok := shifts[punch.EmployeeID]
		if !ok {
			emp, err := s.employeeRepo.GetByID(ctx, punch.EmployeeID)
			if err != nil {
				return attendance.ListPunchesResponse{}, err
			}
			shift = s.calendar.ResolveShift(emp.ShiftLabel)
			shifts[punch.EmployeeID] = shift
		}
		responses = append(responses, s.toPunchResponse(punch, shift))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return attendance.ListPunchesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Punches:    responses,
	}, nil
}

// ResolveDayStatus assembles the day's context and applies the
// resolution policy.
func (s *attendanceServiceImpl) ResolveDayStatus(ctx context.Context, employeeID string, day time.Time) (attendance.DayStatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	dept, err := s.departmentRepo.GetByID(ctx, emp.DepartmentID)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	year, month, d := day.In(s.location).Date()
	day = time.Date(year, month, d, 0, 0, 0, 0, s.location)

	override, err := s.overrideRepo.GetByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	var overrideFlag *bool
	if override != nil {
		overrideFlag = &override.IsWeekOff
	}

	approved, err := s.leaveRepo.GetApprovedByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	punch, err := s.punchRepo.GetByEmployeeAndDay(ctx, employeeID, day)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	status := attendance.ResolveDay(attendance.DayContext{
		Day:           day,
		Shift:         s.calendar.ResolveShift(emp.ShiftLabel),
		Override:      overrideFlag,
		WeekOffDays:   dept.WeekOffDays,
		LeaveApproved: approved != nil,
		Punch:         punch,
		Thresholds:    s.thresholds,
	}, s.now())

	return attendance.DayStatusResponse{
		EmployeeID: employeeID,
		Day:        day.Format("2006-01-02"),
		Status:     status,
	}, nil
}

// MyDayStatus implements attendance.AttendanceService.
func (s *attendanceServiceImpl) MyDayStatus(ctx context.Context, day time.Time) (attendance.DayStatusResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	return s.ResolveDayStatus(ctx, employeeID, day)
}

// MySummary implements attendance.AttendanceService.
func (s *attendanceServiceImpl) MySummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	req.EmployeeID = employeeID
	return s.Summary(ctx, req)
}

// Summary resolves every day in the range with four bulk reads instead
// of per-day queries.
func (s *attendanceServiceImpl) Summary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	dept, err := s.departmentRepo.GetByID(ctx, emp.DepartmentID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, s.location)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, s.location)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return attendance.SummaryResponse{}, attendance.ErrInvalidRange
	}

	punches, err := s.punchRepo.ListByEmployeeRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	overrides, err := s.overrideRepo.ListByEmployeeRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	leaves, err := s.leaveRepo.ListApprovedByEmployeeRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	shift := s.calendar.ResolveShift(emp.ShiftLabel)
	now := s.now()

	counts := make(map[attendance.DayStatus]int)
	var days []attendance.DayStatusResponse
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")

		var overrideFlag *bool
		if o, ok := overrides[key]; ok {
			flag := o.IsWeekOff
			overrideFlag = &flag
		}
		var punch *attendance.Punch
		if p, ok := punches[key]; ok {
			punchCopy := p
			punch = &punchCopy
		}
		_, leaveApproved := leaves[key]

		status := attendance.ResolveDay(attendance.DayContext{
			Day:           day,
			Shift:         shift,
			Override:      overrideFlag,
			WeekOffDays:   dept.WeekOffDays,
			LeaveApproved: leaveApproved,
			Punch:         punch,
			Thresholds:    s.thresholds,
		}, now)

		counts[status]++
		days = append(days, attendance.DayStatusResponse{
			EmployeeID: req.EmployeeID,
			Day:        key,
			Status:     status,
		})
	}

	return attendance.SummaryResponse{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Counts:     counts,
		Days:       days,
	}, nil
}
