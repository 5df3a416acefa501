package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.user_id, e.department_id, e.employee_code, e.full_name, e.email,
	e.phone_number, e.shift_label, e.join_date, e.base_salary,
	e.created_at, e.updated_at, e.deleted_at, d.name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID,
		&emp.UserID,
		&emp.DepartmentID,
		&emp.EmployeeCode,
		&emp.FullName,
		&emp.Email,
		&emp.PhoneNumber,
		&emp.ShiftLabel,
		&emp.JoinDate,
		&emp.BaseSalary,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.DeletedAt,
		&emp.DepartmentName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, user_id, department_id, employee_code, full_name, email,
			phone_number, shift_label, join_date, base_salary, created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, user_id, department_id, employee_code, full_name, email,
			phone_number, shift_label, join_date, base_salary, created_at, updated_at
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query,
		emp.UserID,
		emp.DepartmentID,
		emp.EmployeeCode,
		emp.FullName,
		emp.Email,
		emp.PhoneNumber,
		emp.ShiftLabel,
		emp.JoinDate,
		emp.BaseSalary,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.DepartmentID,
		&result.EmployeeCode,
		&result.FullName,
		&result.Email,
		&result.PhoneNumber,
		&result.ShiftLabel,
		&result.JoinDate,
		&result.BaseSalary,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.user_id = $1 AND e.deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE e.deleted_at IS NULL`
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil {
		where += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Search != nil {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		JOIN departments d ON d.id = e.department_id` + where + `
		ORDER BY e.full_name ASC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, total, nil
}

// ListUserIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListUserIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id FROM employees
		WHERE user_id IS NOT NULL AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET department_id = $1, full_name = $2, email = $3, phone_number = $4,
			shift_label = $5, base_salary = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query,
		emp.DepartmentID,
		emp.FullName,
		emp.Email,
		emp.PhoneNumber,
		emp.ShiftLabel,
		emp.BaseSalary,
		emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
