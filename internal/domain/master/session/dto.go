package session

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type SessionResponse struct {
	ID        string  `json:"id"`
	BatchID   string  `json:"batch_id"`
	BatchName *string `json:"batch_name,omitempty"`
	Title     string  `json:"title"`
	Day       string  `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location,omitempty"`
}

type CreateSessionRequest struct {
	BatchID   string  `json:"batch_id"`
	Title     string  `json:"title"`
	Day       string  `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location,omitempty"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id is required",
		})
	} else if !validator.IsValidUUID(r.BatchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "batch_id",
			Message: "batch_id must be a valid UUID",
		})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be in YYYY-MM-DD format",
		})
	}
	if _, _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if _, _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSessionRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Day       *string `json:"day,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Location  *string `json:"location,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}
	if r.Day != nil {
		if _, ok := validator.IsValidDate(*r.Day); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "day",
				Message: "day must be a valid YYYY-MM-DD date",
			})
		}
	}
	if r.StartTime != nil {
		if _, _, ok := validator.IsValidTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}
	if r.EndTime != nil {
		if _, _, ok := validator.IsValidTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
