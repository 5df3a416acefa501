package schedule

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

// ShiftResponse renders a shift with wall-clock strings.
type ShiftResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type CreateShiftRequest struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	}
	if _, _, ok := validator.IsValidTimeOfDay(r.Start); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a valid HH:MM time",
		})
	}
	if _, _, ok := validator.IsValidTimeOfDay(r.End); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a valid HH:MM time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID    string  `json:"id"`
	Label *string `json:"label,omitempty"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Label != nil && validator.IsEmpty(*r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label must not be empty",
		})
	}
	if r.Start != nil {
		if _, _, ok := validator.IsValidTimeOfDay(*r.Start); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be a valid HH:MM time",
			})
		}
	}
	if r.End != nil {
		if _, _, ok := validator.IsValidTimeOfDay(*r.End); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be a valid HH:MM time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Day        string  `json:"day"`
	IsWeekOff  bool    `json:"is_week_off"`
	Note       *string `json:"note,omitempty"`
}

type CreateOverrideRequest struct {
	EmployeeID string  `json:"employee_id"`
	Day        string  `json:"day"`
	IsWeekOff  bool    `json:"is_week_off"`
	Note       *string `json:"note,omitempty"`
}

func (r *CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be a valid YYYY-MM-DD date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
