package schedule

import (
	"context"
)

// ScheduleService defines business logic for shifts and week-off
// overrides.
type ScheduleService interface {
	// Calendar returns the in-memory shift calendar built at startup.
	Calendar() *Calendar

	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) error
	DeleteShift(ctx context.Context, id string) error

	CreateOverride(ctx context.Context, req CreateOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, id string) error
}
