package leave

import (
	"time"
)

type Kind string

const (
	KindPaid   Kind = "paid"
	KindUnpaid Kind = "unpaid"
)

var KindValues = []string{string(KindPaid), string(KindUnpaid)}

type Portion string

const (
	PortionFull Portion = "full"
	PortionHalf Portion = "half"
)

var PortionValues = []string{string(PortionFull), string(PortionHalf)}

// Half names which half of the day a half-portion leave covers.
type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
	HalfNone   Half = "none"
)

var HalfValues = []string{string(HalfFirst), string(HalfSecond), string(HalfNone)}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRecord is one employee's leave application for one calendar day.
// The (employee_id, day) pair is unique in the store. Approved and
// rejected are terminal states.
type LeaveRecord struct {
	ID         string
	EmployeeID string
	Day        time.Time
	Kind       Kind
	Portion    Portion
	Half       Half
	Reason     string

	Status          Status
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// IsDecided reports whether the record reached a terminal state.
func (r *LeaveRecord) IsDecided() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
