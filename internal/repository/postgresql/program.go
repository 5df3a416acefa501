package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/master/program"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type programRepositoryImpl struct {
	db *database.DB
}

func NewProgramRepository(db *database.DB) program.ProgramRepository {
	return &programRepositoryImpl{db: db}
}

// Create implements program.ProgramRepository.
func (r *programRepositoryImpl) Create(ctx context.Context, p program.Program) (program.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO programs (id, name, code, description, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, name, code, description, created_at, updated_at
	`

	var result program.Program
	err := q.QueryRow(ctx, query, p.Name, p.Code, p.Description).Scan(
		&result.ID,
		&result.Name,
		&result.Code,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return program.Program{}, program.ErrProgramExists
		}
		return program.Program{}, fmt.Errorf("failed to create program: %w", err)
	}

	return result, nil
}

// GetByID implements program.ProgramRepository.
func (r *programRepositoryImpl) GetByID(ctx context.Context, id string) (program.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, created_at, updated_at
		FROM programs
		WHERE id = $1
	`

	var result program.Program
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Code,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return program.Program{}, program.ErrProgramNotFound
		}
		return program.Program{}, fmt.Errorf("failed to get program: %w", err)
	}

	return result, nil
}

// List implements program.ProgramRepository.
func (r *programRepositoryImpl) List(ctx context.Context) ([]program.Program, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, description, created_at, updated_at
		FROM programs
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var programs []program.Program
	for rows.Next() {
		var p program.Program
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan program: %w", err)
		}
		programs = append(programs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return programs, nil
}

// Update implements program.ProgramRepository.
func (r *programRepositoryImpl) Update(ctx context.Context, req program.UpdateProgramRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE programs SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIdx)
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Code != nil {
		query += fmt.Sprintf(", code = $%d", argIdx)
		args = append(args, *req.Code)
		argIdx++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIdx)
		args = append(args, *req.Description)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return program.ErrProgramExists
		}
		return fmt.Errorf("failed to update program: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return program.ErrProgramNotFound
	}
	return nil
}

// Delete implements program.ProgramRepository.
func (r *programRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM programs WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return program.ErrProgramNotFound
	}
	return nil
}
