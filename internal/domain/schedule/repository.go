package schedule

import (
	"context"
	"time"
)

// ShiftRepository defines data access for named shift windows.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	GetByLabel(ctx context.Context, label string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, shift Shift) error
	Delete(ctx context.Context, id string) error
}

// WeekOffOverrideRepository defines data access for per-employee
// week-off exceptions.
type WeekOffOverrideRepository interface {
	Create(ctx context.Context, override WeekOffOverride) (WeekOffOverride, error)
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*WeekOffOverride, error)
	// ListByEmployeeRange returns overrides for one employee with day in
	// [from, to], keyed by the day's "2006-01-02" rendering.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]WeekOffOverride, error)
	Delete(ctx context.Context, id string) error
}
