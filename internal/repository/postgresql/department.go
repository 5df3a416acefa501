package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// week_off_days is an int4[] of 1=Monday .. 7=Sunday values.
func weekdaysToInts(days []schedule.Weekday) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

func intsToWeekdays(vals []int32) []schedule.Weekday {
	out := make([]schedule.Weekday, 0, len(vals))
	for _, v := range vals {
		out = append(out, schedule.Weekday(v))
	}
	return out
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, week_off_days, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), NOW())
		RETURNING id, name, week_off_days, created_at, updated_at
	`

	var result department.Department
	var days []int32
	err := q.QueryRow(ctx, query, dept.Name, weekdaysToInts(dept.WeekOffDays)).Scan(
		&result.ID,
		&result.Name,
		&days,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}
	result.WeekOffDays = intsToWeekdays(days)

	return result, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, week_off_days, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var result department.Department
	var days []int32
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&days,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}
	result.WeekOffDays = intsToWeekdays(days)

	return result, nil
}

// GetByEmployeeID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.week_off_days, d.created_at, d.updated_at
		FROM departments d
		JOIN employees e ON e.department_id = d.id
		WHERE e.id = $1
	`

	var result department.Department
	var days []int32
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&result.ID,
		&result.Name,
		&days,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department by employee: %w", err)
	}
	result.WeekOffDays = intsToWeekdays(days)

	return result, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, week_off_days, created_at, updated_at
		FROM departments
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		var days []int32
		if err := rows.Scan(&d.ID, &d.Name, &days, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		d.WeekOffDays = intsToWeekdays(days)
		departments = append(departments, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, dept department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, week_off_days = $2, updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, dept.Name, weekdaysToInts(dept.WeekOffDays), dept.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return department.ErrDepartmentExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM departments WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}
