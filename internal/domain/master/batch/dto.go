package batch

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type BatchResponse struct {
	ID          string  `json:"id"`
	ProgramID   string  `json:"program_id"`
	ProgramName *string `json:"program_name,omitempty"`
	Name        string  `json:"name"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type CreateBatchRequest struct {
	ProgramID string  `json:"program_id"`
	Name      string  `json:"name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProgramID) {
		errs = append(errs, validator.ValidationError{
			Field:   "program_id",
			Message: "program_id is required",
		})
	} else if !validator.IsValidUUID(r.ProgramID) {
		errs = append(errs, validator.ValidationError{
			Field:   "program_id",
			Message: "program_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
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

type UpdateBatchRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (r *UpdateBatchRequest) Validate() error {
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
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid YYYY-MM-DD date",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
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
