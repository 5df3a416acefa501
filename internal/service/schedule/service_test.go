package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

// ==================== FAKES ====================

type memShiftRepo struct {
	shifts map[string]schedule.Shift
	nextID int
}

func newMemShiftRepo(shifts ...schedule.Shift) *memShiftRepo {
	r := &memShiftRepo{shifts: make(map[string]schedule.Shift)}
	for _, sh := range shifts {
		r.shifts[sh.ID] = sh
	}
	return r
}

func (r *memShiftRepo) Create(_ context.Context, sh schedule.Shift) (schedule.Shift, error) {
	for _, existing := range r.shifts {
		if existing.Label == sh.Label {
			return schedule.Shift{}, schedule.ErrShiftLabelExists
		}
	}
	r.nextID++
	sh.ID = fmt.Sprintf("shift-%d", r.nextID)
	r.shifts[sh.ID] = sh
	return sh, nil
}

func (r *memShiftRepo) GetByID(_ context.Context, id string) (schedule.Shift, error) {
	if sh, ok := r.shifts[id]; ok {
		return sh, nil
	}
	return schedule.Shift{}, schedule.ErrShiftNotFound
}

func (r *memShiftRepo) GetByLabel(_ context.Context, label string) (schedule.Shift, error) {
	for _, sh := range r.shifts {
		if sh.Label == label {
			return sh, nil
		}
	}
	return schedule.Shift{}, schedule.ErrShiftNotFound
}

func (r *memShiftRepo) List(_ context.Context) ([]schedule.Shift, error) {
	var out []schedule.Shift
	for _, sh := range r.shifts {
		out = append(out, sh)
	}
	return out, nil
}

func (r *memShiftRepo) Update(_ context.Context, sh schedule.Shift) error {
	if _, ok := r.shifts[sh.ID]; !ok {
		return schedule.ErrShiftNotFound
	}
	r.shifts[sh.ID] = sh
	return nil
}

func (r *memShiftRepo) Delete(_ context.Context, id string) error {
	delete(r.shifts, id)
	return nil
}

type noopOverrideRepo struct{}

func (noopOverrideRepo) Create(_ context.Context, o schedule.WeekOffOverride) (schedule.WeekOffOverride, error) {
	return o, nil
}

func (noopOverrideRepo) GetByEmployeeAndDay(context.Context, string, time.Time) (*schedule.WeekOffOverride, error) {
	return nil, nil
}

func (noopOverrideRepo) ListByEmployeeRange(context.Context, string, time.Time, time.Time) (map[string]schedule.WeekOffOverride, error) {
	return nil, nil
}

func (noopOverrideRepo) Delete(context.Context, string) error { return nil }

type noopEmployeeRepo struct{}

func (noopEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (noopEmployeeRepo) GetByID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (noopEmployeeRepo) GetByUserID(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (noopEmployeeRepo) List(context.Context, employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (noopEmployeeRepo) ListUserIDs(context.Context) ([]string, error) { return nil, nil }

func (noopEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

func (noopEmployeeRepo) Delete(context.Context, string) error { return nil }

// ==================== HELPERS ====================

func newShiftTestService(t *testing.T) (*scheduleServiceImpl, *memShiftRepo) {
	t.Helper()

	defaultShift := schedule.Shift{
		ID:    "shift-general",
		Label: "General",
		Start: schedule.TimeOfDay{Hour: 9},
		End:   schedule.TimeOfDay{Hour: 18},
	}
	nightShift := schedule.Shift{
		ID:    "shift-night",
		Label: "Night",
		Start: schedule.TimeOfDay{Hour: 21},
		End:   schedule.TimeOfDay{Hour: 6},
	}
	repo := newMemShiftRepo(defaultShift, nightShift)

	calendar, err := schedule.NewCalendar([]schedule.Shift{defaultShift, nightShift}, "General")
	require.NoError(t, err)

	svc := NewScheduleService(repo, noopOverrideRepo{}, noopEmployeeRepo{}, calendar).(*scheduleServiceImpl)
	return svc, repo
}

func strPtr(s string) *string { return &s }

// ==================== TESTS ====================

func TestUpdateShiftRejectsRenamingDefault(t *testing.T) {
	svc, repo := newShiftTestService(t)

	err := svc.UpdateShift(context.Background(), schedule.UpdateShiftRequest{
		ID:    "shift-general",
		Label: strPtr("Morning"),
	})
	assert.ErrorIs(t, err, schedule.ErrDefaultShiftMissing)

	// The store is untouched and the default still resolves.
	stored, err := repo.GetByID(context.Background(), "shift-general")
	require.NoError(t, err)
	assert.Equal(t, "General", stored.Label)
	assert.Equal(t, "General", svc.calendar.ResolveShift(nil).Label)
}

func TestUpdateShiftDefaultTimesWithoutRename(t *testing.T) {
	svc, repo := newShiftTestService(t)

	err := svc.UpdateShift(context.Background(), schedule.UpdateShiftRequest{
		ID:    "shift-general",
		Label: strPtr("General"),
		Start: strPtr("10:00"),
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), "shift-general")
	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOfDay{Hour: 10}, stored.Start)
	assert.Equal(t, 10, svc.calendar.ResolveShift(nil).Start.Hour)
}

func TestUpdateShiftRenamesNonDefault(t *testing.T) {
	svc, repo := newShiftTestService(t)

	err := svc.UpdateShift(context.Background(), schedule.UpdateShiftRequest{
		ID:    "shift-night",
		Label: strPtr("Graveyard"),
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), "shift-night")
	require.NoError(t, err)
	assert.Equal(t, "Graveyard", stored.Label)
	assert.Equal(t, "Graveyard", svc.calendar.ResolveShift(strPtr("Graveyard")).Label)
}

func TestDeleteShiftRejectsDefault(t *testing.T) {
	svc, repo := newShiftTestService(t)

	err := svc.DeleteShift(context.Background(), "shift-general")
	assert.ErrorIs(t, err, schedule.ErrDefaultShiftMissing)

	_, err = repo.GetByID(context.Background(), "shift-general")
	assert.NoError(t, err)
}

func TestDeleteNonDefaultShift(t *testing.T) {
	svc, repo := newShiftTestService(t)

	require.NoError(t, svc.DeleteShift(context.Background(), "shift-night"))

	_, err := repo.GetByID(context.Background(), "shift-night")
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
	// Unknown labels fall back to the default window.
	assert.Equal(t, "General", svc.calendar.ResolveShift(strPtr("Night")).Label)
}
