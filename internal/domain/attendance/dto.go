package attendance

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	in := CheckInRequest{Latitude: r.Latitude, Longitude: r.Longitude}
	return in.Validate()
}

// PunchResponse renders one punch with its resolved day status.
type PunchResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	Day          string    `json:"day"`
	CheckIn      *string   `json:"check_in,omitempty"`
	CheckOut     *string   `json:"check_out,omitempty"`
	WorkedMins   *int      `json:"worked_minutes,omitempty"`
	Status       DayStatus `json:"status"`
}

type ListPunchesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Punches    []PunchResponse `json:"punches"`
}

// Filter narrows admin punch listing.
type Filter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid YYYY-MM-DD date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayStatusResponse is the resolved status of one employee-day.
type DayStatusResponse struct {
	EmployeeID string    `json:"employee_id"`
	Day        string    `json:"day"`
	Status     DayStatus `json:"status"`
}

// SummaryRequest asks for per-status counts over a date range.
type SummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid YYYY-MM-DD date",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SummaryResponse aggregates resolved statuses over a range; Days keeps
// the per-day detail for calendar rendering.
type SummaryResponse struct {
	EmployeeID string              `json:"employee_id"`
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	Counts     map[DayStatus]int   `json:"counts"`
	Days       []DayStatusResponse `json:"days"`
}
