package program

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type ProgramResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreateProgramRequest struct {
	Name        string  `json:"name"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateProgramRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProgramRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateProgramRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}
	return nil
}
