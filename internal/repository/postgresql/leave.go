package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.day, l.kind, l.portion, l.half, l.reason,
	l.status, l.decided_by, l.decided_at, l.rejection_reason,
	l.created_at, l.updated_at, e.full_name
`

func scanLeave(row pgx.Row) (leave.LeaveRecord, error) {
	var rec leave.LeaveRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Day,
		&rec.Kind,
		&rec.Portion,
		&rec.Half,
		&rec.Reason,
		&rec.Status,
		&rec.DecidedBy,
		&rec.DecidedAt,
		&rec.RejectionReason,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
	)
	return rec, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, record leave.LeaveRecord) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (
			id, employee_id, day, kind, portion, half, reason, status, created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	result := record
	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Day,
		record.Kind,
		record.Portion,
		record.Half,
		record.Reason,
		record.Status,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return leave.LeaveRecord{}, leave.ErrLeaveAlreadyApplied
		}
		return leave.LeaveRecord{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	return result, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	rec, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRecord{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRecord{}, fmt.Errorf("failed to get leave record: %w", err)
	}
	return rec, nil
}

// GetApprovedByEmployeeAndDay implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetApprovedByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1 AND l.day = $2 AND l.status = $3
	`

	rec, err := scanLeave(q.QueryRow(ctx, query, employeeID, day, leave.StatusApproved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved leave: %w", err)
	}
	return &rec, nil
}

// ListApprovedByEmployeeRange implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) (map[string]leave.LeaveRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.employee_id = $1 AND l.day BETWEEN $2 AND $3 AND l.status = $4
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, leave.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	defer rows.Close()

	records := make(map[string]leave.LeaveRecord)
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records[rec.Day.Format("2006-01-02")] = rec
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.Filter) ([]leave.LeaveRecord, int64, error) {
	filter.EmployeeID = &employeeID
	return r.List(ctx, filter)
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.Filter) ([]leave.LeaveRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND l.day >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND l.day <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_records l` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave records: %w", err)
	}

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_records l
		JOIN employees e ON e.id = l.employee_id` + where + `
		ORDER BY l.day DESC, l.created_at DESC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.LeaveRecord
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, record leave.LeaveRecord) error {
	q := GetQuerier(ctx, r.db)

	// The status guard keeps approved/rejected terminal even under
	// concurrent decisions.
	query := `
		UPDATE leave_records
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	commandTag, err := q.Exec(ctx, query,
		record.Status,
		record.DecidedBy,
		record.DecidedAt,
		record.RejectionReason,
		record.ID,
		leave.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM leave_records WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave record: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}
