package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/master/batch"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type batchRepositoryImpl struct {
	db *database.DB
}

func NewBatchRepository(db *database.DB) batch.BatchRepository {
	return &batchRepositoryImpl{db: db}
}

const batchColumns = `
	b.id, b.program_id, b.name, b.start_date, b.end_date,
	b.created_at, b.updated_at, p.name
`

func scanBatch(row pgx.Row) (batch.Batch, error) {
	var b batch.Batch
	err := row.Scan(
		&b.ID,
		&b.ProgramID,
		&b.Name,
		&b.StartDate,
		&b.EndDate,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ProgramName,
	)
	return b, err
}

// Create implements batch.BatchRepository.
func (r *batchRepositoryImpl) Create(ctx context.Context, b batch.Batch) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO batches (id, program_id, name, start_date, end_date, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, program_id, name, start_date, end_date, created_at, updated_at
	`

	var result batch.Batch
	err := q.QueryRow(ctx, query, b.ProgramID, b.Name, b.StartDate, b.EndDate).Scan(
		&result.ID,
		&result.ProgramID,
		&result.Name,
		&result.StartDate,
		&result.EndDate,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return batch.Batch{}, batch.ErrBatchExists
		}
		return batch.Batch{}, fmt.Errorf("failed to create batch: %w", err)
	}

	return result, nil
}

// GetByID implements batch.BatchRepository.
func (r *batchRepositoryImpl) GetByID(ctx context.Context, id string) (batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + batchColumns + `
		FROM batches b
		JOIN programs p ON p.id = b.program_id
		WHERE b.id = $1
	`

	b, err := scanBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return batch.Batch{}, batch.ErrBatchNotFound
		}
		return batch.Batch{}, fmt.Errorf("failed to get batch: %w", err)
	}
	return b, nil
}

// ListByProgram implements batch.BatchRepository.
func (r *batchRepositoryImpl) ListByProgram(ctx context.Context, programID string) ([]batch.Batch, error) {
	return r.list(ctx, ` WHERE b.program_id = $1`, programID)
}

// List implements batch.BatchRepository.
func (r *batchRepositoryImpl) List(ctx context.Context) ([]batch.Batch, error) {
	return r.list(ctx, ``)
}

func (r *batchRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]batch.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + batchColumns + `
		FROM batches b
		JOIN programs p ON p.id = b.program_id` + where + `
		ORDER BY b.name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []batch.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return batches, nil
}

// Update implements batch.BatchRepository.
func (r *batchRepositoryImpl) Update(ctx context.Context, req batch.UpdateBatchRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE batches SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start_date: %w", err)
		}
		query += fmt.Sprintf(", start_date = $%d", argIdx)
		args = append(args, start)
		argIdx++
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end_date: %w", err)
		}
		query += fmt.Sprintf(", end_date = $%d", argIdx)
		args = append(args, end)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return batch.ErrBatchExists
		}
		return fmt.Errorf("failed to update batch: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}

// Delete implements batch.BatchRepository.
func (r *batchRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM batches WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}
