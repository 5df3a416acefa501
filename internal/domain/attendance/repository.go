package attendance

import (
	"context"
	"time"
)

// PunchRepository defines data access for attendance punches. The store
// enforces uniqueness on (employee_id, day); Create surfaces a
// concurrent duplicate as ErrAlreadyCheckedIn.
type PunchRepository interface {
	Create(ctx context.Context, punch Punch) (Punch, error)
	GetByID(ctx context.Context, id string) (Punch, error)
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Punch, error)
	// Update writes the check-out half of the punch.
	Update(ctx context.Context, punch Punch) error
	List(ctx context.Context, filter Filter) ([]Punch, int64, error)
	// ListByEmployeeRange returns punches with day in [from, to], keyed
	// by the day's "2006-01-02" rendering.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]Punch, error)
	// ListOpenBefore returns punches still missing a check-out whose day
	// is on or before cutoff. Used by the forgot-to-check-out reminder.
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Punch, error)
}
