package employee

import (
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	DepartmentID string  `json:"department_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	ShiftLabel   *string `json:"shift_label,omitempty"`
	JoinDate     string  `json:"join_date"`
	BaseSalary   *string `json:"base_salary,omitempty"`
	// InitialPassword seeds the login account; the employee code is
	// used when omitted.
	InitialPassword *string `json:"initial_password,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "department_id",
			Message: "department_id is required",
		})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "join_date",
			Message: "join_date must be a valid YYYY-MM-DD date",
		})
	}
	if r.InitialPassword != nil && len(*r.InitialPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "initial_password",
			Message: "initial_password must be at least 8 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"id"`
	DepartmentID *string `json:"department_id,omitempty"`
	FullName     *string `json:"full_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	ShiftLabel   *string `json:"shift_label,omitempty"`
	BaseSalary   *string `json:"base_salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	DepartmentID   string  `json:"department_id"`
	DepartmentName *string `json:"department_name,omitempty"`
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	ShiftLabel     *string `json:"shift_label,omitempty"`
	JoinDate       string  `json:"join_date"`
	BaseSalary     *string `json:"base_salary,omitempty"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

// Filter narrows employee listing.
type Filter struct {
	DepartmentID *string
	Search       *string
	Page         int
	Limit        int
}
