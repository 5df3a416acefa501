package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn creates today's punch for the authenticated employee.
	CheckIn(ctx context.Context, req CheckInRequest) (PunchResponse, error)

	// CheckOut closes today's open punch.
	CheckOut(ctx context.Context, req CheckOutRequest) (PunchResponse, error)

	// GetMyPunches lists the authenticated employee's punches.
	GetMyPunches(ctx context.Context, filter Filter) (ListPunchesResponse, error)

	// ListPunches lists punches across employees (admin).
	ListPunches(ctx context.Context, filter Filter) (ListPunchesResponse, error)

	// ResolveDayStatus resolves one employee-day.
	ResolveDayStatus(ctx context.Context, employeeID string, day time.Time) (DayStatusResponse, error)

	// MyDayStatus resolves one day for the authenticated employee.
	MyDayStatus(ctx context.Context, day time.Time) (DayStatusResponse, error)

	// Summary resolves every day in a range and aggregates counts.
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// MySummary is Summary scoped to the authenticated employee.
	MySummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}
