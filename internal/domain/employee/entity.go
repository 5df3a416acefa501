package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	UserID       *string
	DepartmentID string
	EmployeeCode string
	FullName     string
	Email        string
	PhoneNumber  *string
	// ShiftLabel is the assigned named shift; nil falls back to the
	// calendar's default window.
	ShiftLabel *string
	JoinDate   time.Time
	BaseSalary *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	// DTO
	DepartmentName *string
}
