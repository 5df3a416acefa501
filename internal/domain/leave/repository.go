package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave records. The store
// enforces uniqueness on (employee_id, day); Create surfaces a
// concurrent duplicate as ErrLeaveAlreadyApplied.
type LeaveRepository interface {
	Create(ctx context.Context, record LeaveRecord) (LeaveRecord, error)
	GetByID(ctx context.Context, id string) (LeaveRecord, error)
	GetApprovedByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*LeaveRecord, error)
	// ListApprovedByEmployeeRange returns approved records with day in
	// [from, to], keyed by the day's "2006-01-02" rendering.
	ListApprovedByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]LeaveRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]LeaveRecord, int64, error)
	List(ctx context.Context, filter Filter) ([]LeaveRecord, int64, error)
	UpdateStatus(ctx context.Context, record LeaveRecord) error
	Delete(ctx context.Context, id string) error
}
