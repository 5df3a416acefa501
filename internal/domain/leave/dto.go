package leave

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Day     string `json:"day"`
	Kind    string `json:"kind"`
	Portion string `json:"portion"`
	Half    string `json:"half,omitempty"`
	Reason  string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Day); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be a valid YYYY-MM-DD date",
		})
	}
	if !validator.IsInSlice(r.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: paid, unpaid",
		})
	}
	if !validator.IsInSlice(r.Portion, PortionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "portion",
			Message: "portion must be one of: full, half",
		})
	}
	if r.Portion == string(PortionHalf) {
		if r.Half != string(HalfFirst) && r.Half != string(HalfSecond) {
			errs = append(errs, validator.ValidationError{
				Field:   "half",
				Message: "half must be first or second for a half-day leave",
			})
		}
	} else if r.Half != "" && r.Half != string(HalfNone) {
		errs = append(errs, validator.ValidationError{
			Field:   "half",
			Message: "half must be omitted for a full-day leave",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Day             string  `json:"day"`
	Kind            Kind    `json:"kind"`
	Portion         Portion `json:"portion"`
	Half            Half    `json:"half"`
	Reason          string  `json:"reason"`
	Status          Status  `json:"status"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListLeavesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Leaves     []LeaveResponse `json:"leaves"`
}

// Filter narrows leave listing.
type Filter struct {
	EmployeeID *string
	Status     *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}
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
