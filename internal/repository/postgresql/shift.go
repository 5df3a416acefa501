package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// start_time and end_time are stored as "HH:MM" text.
func scanShift(row pgx.Row) (schedule.Shift, error) {
	var s schedule.Shift
	var startRaw, endRaw string
	err := row.Scan(&s.ID, &s.Label, &startRaw, &endRaw, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.Shift{}, err
	}
	if s.Start, err = schedule.ParseTimeOfDay(startRaw); err != nil {
		return schedule.Shift{}, err
	}
	if s.End, err = schedule.ParseTimeOfDay(endRaw); err != nil {
		return schedule.Shift{}, err
	}
	return s, nil
}

// Create implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, shift schedule.Shift) (schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, label, start_time, end_time, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	result := shift
	err := q.QueryRow(ctx, query, shift.Label, shift.Start.String(), shift.End.String()).Scan(
		&result.ID,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.Shift{}, schedule.ErrShiftLabelExists
		}
		return schedule.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return result, nil
}

// GetByID implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, label, start_time, end_time, created_at, updated_at
		FROM shifts
		WHERE id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// GetByLabel implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) GetByLabel(ctx context.Context, label string) (schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, label, start_time, end_time, created_at, updated_at
		FROM shifts
		WHERE label = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, label))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to get shift by label: %w", err)
	}
	return s, nil
}

// List implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]schedule.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, label, start_time, end_time, created_at, updated_at
		FROM shifts
		ORDER BY label ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []schedule.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, nil
}

// Update implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, shift schedule.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET label = $1, start_time = $2, end_time = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, shift.Label, shift.Start.String(), shift.End.String(), shift.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ErrShiftLabelExists
		}
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}

// Delete implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM shifts WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}
