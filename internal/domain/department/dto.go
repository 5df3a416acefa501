package department

import (
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	WeekOffDays []string `json:"week_off_days"`
}

type CreateDepartmentRequest struct {
	Name        string   `json:"name"`
	WeekOffDays []string `json:"week_off_days"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	for _, d := range r.WeekOffDays {
		if _, err := schedule.ParseWeekday(d); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "week_off_days",
				Message: "week_off_days must contain weekday names (monday..sunday)",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name,omitempty"`
	WeekOffDays *[]string `json:"week_off_days,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.WeekOffDays != nil {
		for _, d := range *r.WeekOffDays {
			if _, err := schedule.ParseWeekday(d); err != nil {
				errs = append(errs, validator.ValidationError{
					Field:   "week_off_days",
					Message: "week_off_days must contain weekday names (monday..sunday)",
				})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
