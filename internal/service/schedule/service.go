package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

type scheduleServiceImpl struct {
	shiftRepo    schedule.ShiftRepository
	overrideRepo schedule.WeekOffOverrideRepository
	employeeRepo employee.EmployeeRepository
	calendar     *schedule.Calendar
}

func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	overrideRepo schedule.WeekOffOverrideRepository,
	employeeRepo employee.EmployeeRepository,
	calendar *schedule.Calendar,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		shiftRepo:    shiftRepo,
		overrideRepo: overrideRepo,
		employeeRepo: employeeRepo,
		calendar:     calendar,
	}
}

func (s *scheduleServiceImpl) Calendar() *schedule.Calendar {
	return s.calendar
}

// reloadCalendar rebuilds the in-memory shift table after a mutation.
// A failed reload keeps the previous table, so lookups stay total.
func (s *scheduleServiceImpl) reloadCalendar(ctx context.Context) error {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload shifts: %w", err)
	}
	return s.calendar.Reload(shifts)
}

func toShiftResponse(sh schedule.Shift) schedule.ShiftResponse {
	return schedule.ShiftResponse{
		ID:    sh.ID,
		Label: sh.Label,
		Start: sh.Start.String(),
		End:   sh.End.String(),
	}
}

func (s *scheduleServiceImpl) CreateShift(ctx context.Context, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	start, err := schedule.ParseTimeOfDay(req.Start)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	end, err := schedule.ParseTimeOfDay(req.End)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, schedule.Shift{
		Label: req.Label,
		Start: start,
		End:   end,
	})
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	if err := s.reloadCalendar(ctx); err != nil {
		return schedule.ShiftResponse{}, err
	}

	return toShiftResponse(created), nil
}

func (s *scheduleServiceImpl) GetShift(ctx context.Context, id string) (schedule.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	return toShiftResponse(sh), nil
}

func (s *scheduleServiceImpl) ListShifts(ctx context.Context) ([]schedule.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, toShiftResponse(sh))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) UpdateShift(ctx context.Context, req schedule.UpdateShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	sh, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Label != nil {
		// Renaming the default shift would leave its label with no
		// window; the default must always resolve.
		if sh.Label == s.calendar.DefaultLabel() && *req.Label != sh.Label {
			return schedule.ErrDefaultShiftMissing
		}
		sh.Label = *req.Label
	}
	if req.Start != nil {
		if sh.Start, err = schedule.ParseTimeOfDay(*req.Start); err != nil {
			return err
		}
	}
	if req.End != nil {
		if sh.End, err = schedule.ParseTimeOfDay(*req.End); err != nil {
			return err
		}
	}

	if err := s.shiftRepo.Update(ctx, sh); err != nil {
		return err
	}
	return s.reloadCalendar(ctx)
}

func (s *scheduleServiceImpl) DeleteShift(ctx context.Context, id string) error {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// The default window must always resolve.
	if sh.Label == s.calendar.DefaultLabel() {
		return schedule.ErrDefaultShiftMissing
	}

	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.reloadCalendar(ctx)
}

func (s *scheduleServiceImpl) CreateOverride(ctx context.Context, req schedule.CreateOverrideRequest) (schedule.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.OverrideResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return schedule.OverrideResponse{}, err
	}

	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		return schedule.OverrideResponse{}, fmt.Errorf("invalid day: %w", err)
	}

	created, err := s.overrideRepo.Create(ctx, schedule.WeekOffOverride{
		EmployeeID: req.EmployeeID,
		Day:        day,
		IsWeekOff:  req.IsWeekOff,
		Note:       req.Note,
	})
	if err != nil {
		return schedule.OverrideResponse{}, err
	}

	return schedule.OverrideResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		Day:        created.Day.Format("2006-01-02"),
		IsWeekOff:  created.IsWeekOff,
		Note:       created.Note,
	}, nil
}

func (s *scheduleServiceImpl) DeleteOverride(ctx context.Context, id string) error {
	return s.overrideRepo.Delete(ctx, id)
}
