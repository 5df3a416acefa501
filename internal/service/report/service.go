package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/report"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/export"
)

type reportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	punchRepo      attendance.PunchRepository
	overrideRepo   schedule.WeekOffOverrideRepository
	leaveRepo      leave.LeaveRepository
	calendar       *schedule.Calendar
	thresholds     attendance.Thresholds
	location       *time.Location

	// now is swappable in tests.
	now func() time.Time
}

// NewReportService creates the monthly report service.
func NewReportService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	punchRepo attendance.PunchRepository,
	overrideRepo schedule.WeekOffOverrideRepository,
	leaveRepo leave.LeaveRepository,
	calendar *schedule.Calendar,
	thresholds attendance.Thresholds,
	location *time.Location,
) report.ReportService {
	return &reportServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		punchRepo:      punchRepo,
		overrideRepo:   overrideRepo,
		leaveRepo:      leaveRepo,
		calendar:       calendar,
		thresholds:     thresholds,
		location:       location,
		now:            time.Now,
	}
}

// MonthlyReport implements report.ReportService.
func (s *reportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	employees, err := s.listEmployees(ctx, req.EmployeeID)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}
	if len(employees) == 0 {
		return report.MonthlyReportResponse{}, report.ErrEmptyReport
	}

	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.location)
	end := start.AddDate(0, 1, -1)

	// Department week-off sets are shared across employees, fetch each
	// one once.
	departments := make(map[string][]schedule.Weekday)
	now := s.now()

	rows := make([]report.EmployeeRow, 0, len(employees))
	for _, emp := range employees {
		weekOffDays, ok := departments[emp.DepartmentID]
		if !ok {
			dept, err := s.departmentRepo.GetByID(ctx, emp.DepartmentID)
			if err != nil {
				return report.MonthlyReportResponse{}, err
			}
			weekOffDays = dept.WeekOffDays
			departments[emp.DepartmentID] = weekOffDays
		}

		row, err := s.employeeRow(ctx, emp, weekOffDays, start, end, now)
		if err != nil {
			return report.MonthlyReportResponse{}, err
		}
		rows = append(rows, row)
	}

	return report.MonthlyReportResponse{
		Year:  req.Year,
		Month: req.Month,
		Rows:  rows,
	}, nil
}

func (s *reportServiceImpl) listEmployees(ctx context.Context, employeeID *string) ([]employee.Employee, error) {
	if employeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *employeeID)
		if err != nil {
			return nil, err
		}
		return []employee.Employee{emp}, nil
	}

	var all []employee.Employee
	filter := employee.Filter{Page: 1, Limit: 200}
	for {
		page, total, err := s.employeeRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if int64(len(all)) >= total || len(page) == 0 {
			return all, nil
		}
		filter.Page++
	}
}

// employeeRow resolves one employee's month with three bulk reads.
func (s *reportServiceImpl) employeeRow(
	ctx context.Context,
	emp employee.Employee,
	weekOffDays []schedule.Weekday,
	start, end time.Time,
	now time.Time,
) (report.EmployeeRow, error) {
	punches, err := s.punchRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	if err != nil {
		return report.EmployeeRow{}, err
	}
	overrides, err := s.overrideRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	if err != nil {
		return report.EmployeeRow{}, err
	}
	leaves, err := s.leaveRepo.ListApprovedByEmployeeRange(ctx, emp.ID, start, end)
	if err != nil {
		return report.EmployeeRow{}, err
	}

	shift := s.calendar.ResolveShift(emp.ShiftLabel)

	counts := make(map[attendance.DayStatus]int)
	days := make([]report.DayCell, 0, end.Day())
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
			WeekOffDays:   weekOffDays,
			LeaveApproved: leaveApproved,
			Punch:         punch,
			Thresholds:    s.thresholds,
		}, now)

		counts[status]++
		cell := report.DayCell{Day: day, Status: status}
		if punch != nil {
			checkIn := punch.CheckIn.In(s.location)
			cell.CheckIn = &checkIn
			if punch.CheckOut != nil {
				checkOut := punch.CheckOut.In(s.location)
				cell.CheckOut = &checkOut
			}
		}
		days = append(days, cell)
	}

	return report.EmployeeRow{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		ShiftLabel:   shift.Label,
		Days:         days,
		Counts:       counts,
	}, nil
}

// Export implements report.ReportService.
func (s *reportServiceImpl) Export(ctx context.Context, req report.MonthlyReportRequest, format report.ExportFormat) (report.ExportResult, error) {
	if format != report.FormatCSV && format != report.FormatXLSX {
		return report.ExportResult{}, report.ErrUnsupportedFormat
	}

	resp, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.ExportResult{}, err
	}

	table := buildTable(resp)
	monthName := time.Month(resp.Month).String()
	baseName := fmt.Sprintf("attendance_%04d_%02d", resp.Year, resp.Month)

	switch format {
	case report.FormatCSV:
		content, err := export.CSV(table)
		if err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to render csv report: %w", err)
		}
		return report.ExportResult{
			FileName:    baseName + ".csv",
			ContentType: "text/csv",
			Content:     content,
		}, nil
	default:
		sheet := fmt.Sprintf("%s %d", monthName, resp.Year)
		content, err := export.XLSX(table, sheet)
		if err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to render xlsx report: %w", err)
		}
		return report.ExportResult{
			FileName:    baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
}

// buildTable flattens a report into one row per employee-day.
func buildTable(resp report.MonthlyReportResponse) export.Table {
	t := export.Table{
		Headers: []string{"Employee ID", "Employee Name", "Shift", "Day", "Status", "Check In", "Check Out"},
	}

	for _, row := range resp.Rows {
		for _, cell := range row.Days {
			checkIn, checkOut := "", ""
			if cell.CheckIn != nil {
				checkIn = cell.CheckIn.Format("15:04:05")
			}
			if cell.CheckOut != nil {
				checkOut = cell.CheckOut.Format("15:04:05")
			}
			t.Rows = append(t.Rows, []string{
				row.EmployeeID,
				row.EmployeeName,
				row.ShiftLabel,
				cell.Day.Format("2006-01-02"),
				string(cell.Status),
				checkIn,
				checkOut,
			})
		}
	}
	return t
}
