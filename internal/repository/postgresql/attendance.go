package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchColumns = `
	a.id, a.employee_id, a.day, a.check_in, a.check_out,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.created_at, a.updated_at, e.full_name
`

func scanPunch(row pgx.Row) (attendance.Punch, error) {
	var p attendance.Punch
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Day,
		&p.CheckIn,
		&p.CheckOut,
		&p.CheckInLatitude,
		&p.CheckInLongitude,
		&p.CheckOutLatitude,
		&p.CheckOutLongitude,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}

// Create implements attendance.PunchRepository.
func (r *punchRepositoryImpl) Create(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_punches (
			id, employee_id, day, check_in, check_in_latitude, check_in_longitude,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	result := punch
	err := q.QueryRow(ctx, query,
		punch.EmployeeID,
		punch.Day,
		punch.CheckIn,
		punch.CheckInLatitude,
		punch.CheckInLongitude,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Punch{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.PunchRepository.
func (r *punchRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Punch{}, attendance.ErrPunchNotFound
		}
		return attendance.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}
	return p, nil
}

// GetByEmployeeAndDay implements attendance.PunchRepository.
func (r *punchRepositoryImpl) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.day = $2
	`

	p, err := scanPunch(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get punch: %w", err)
	}
	return &p, nil
}

// Update implements attendance.PunchRepository.
func (r *punchRepositoryImpl) Update(ctx context.Context, punch attendance.Punch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_punches
		SET check_out = $1, check_out_latitude = $2, check_out_longitude = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query,
		punch.CheckOut,
		punch.CheckOutLatitude,
		punch.CheckOutLongitude,
		punch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update punch: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrPunchNotFound
	}
	return nil
}

// List implements attendance.PunchRepository.
func (r *punchRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Punch, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND a.day >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND a.day <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_punches a` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches a
		JOIN employees e ON e.id = a.employee_id` + where + `
		ORDER BY a.day DESC, e.full_name ASC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, total, nil
}

// ListByEmployeeRange implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.day BETWEEN $2 AND $3
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	punches := make(map[string]attendance.Punch)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches[p.Day.Format("2006-01-02")] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, nil
}

// ListOpenBefore implements attendance.PunchRepository.
func (r *punchRepositoryImpl) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.check_out IS NULL AND a.day <= $1
		ORDER BY a.day ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return punches, nil
}
