package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type weekOffOverrideRepositoryImpl struct {
	db *database.DB
}

func NewWeekOffOverrideRepository(db *database.DB) schedule.WeekOffOverrideRepository {
	return &weekOffOverrideRepositoryImpl{db: db}
}

const overrideColumns = `id, employee_id, day, is_week_off, note, created_by, created_at, updated_at`

func scanOverride(row pgx.Row) (schedule.WeekOffOverride, error) {
	var o schedule.WeekOffOverride
	err := row.Scan(
		&o.ID,
		&o.EmployeeID,
		&o.Day,
		&o.IsWeekOff,
		&o.Note,
		&o.CreatedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// Create implements schedule.WeekOffOverrideRepository.
func (r *weekOffOverrideRepositoryImpl) Create(ctx context.Context, override schedule.WeekOffOverride) (schedule.WeekOffOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO week_off_overrides (id, employee_id, day, is_week_off, note, created_by, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + overrideColumns + `
	`

	o, err := scanOverride(q.QueryRow(ctx, query,
		override.EmployeeID,
		override.Day,
		override.IsWeekOff,
		override.Note,
		override.CreatedBy,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.WeekOffOverride{}, schedule.ErrOverrideAlreadyExists
		}
		return schedule.WeekOffOverride{}, fmt.Errorf("failed to create week-off override: %w", err)
	}

	return o, nil
}

// GetByEmployeeAndDay implements schedule.WeekOffOverrideRepository.
func (r *weekOffOverrideRepositoryImpl) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*schedule.WeekOffOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overrideColumns + `
		FROM week_off_overrides
		WHERE employee_id = $1 AND day = $2
	`

	o, err := scanOverride(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get week-off override: %w", err)
	}
	return &o, nil
}

// ListByEmployeeRange implements schedule.WeekOffOverrideRepository.
func (r *weekOffOverrideRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]schedule.WeekOffOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overrideColumns + `
		FROM week_off_overrides
		WHERE employee_id = $1 AND day BETWEEN $2 AND $3
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list week-off overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]schedule.WeekOffOverride)
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan week-off override: %w", err)
		}
		overrides[o.Day.Format("2006-01-02")] = o
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return overrides, nil
}

// Delete implements schedule.WeekOffOverrideRepository.
func (r *weekOffOverrideRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM week_off_overrides WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete week-off override: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrOverrideNotFound
	}
	return nil
}
