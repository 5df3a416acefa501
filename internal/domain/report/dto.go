package report

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

// MonthlyReportRequest asks for one calendar month of resolved day
// statuses, either for a single employee or for everyone.
type MonthlyReportRequest struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayCell is one resolved day for one employee in a report.
type DayCell struct {
	Day      time.Time            `json:"day"`
	Status   attendance.DayStatus `json:"status"`
	CheckIn  *time.Time           `json:"check_in,omitempty"`
	CheckOut *time.Time           `json:"check_out,omitempty"`
}

// EmployeeRow is one employee's month in a report.
type EmployeeRow struct {
	EmployeeID   string                       `json:"employee_id"`
	EmployeeName string                       `json:"employee_name"`
	ShiftLabel   string                       `json:"shift_label"`
	Days         []DayCell                    `json:"days"`
	Counts       map[attendance.DayStatus]int `json:"counts"`
}

// MonthlyReportResponse is the assembled report for one month.
type MonthlyReportResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Rows  []EmployeeRow `json:"rows"`
}

// ExportFormat selects the report download encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportResult carries a rendered report file.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}
