package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/master/session"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// start_time and end_time are stored as "HH:MM" text.
const sessionColumns = `
	s.id, s.batch_id, s.title, s.day, s.start_time, s.end_time, s.location,
	s.created_at, s.updated_at, b.name
`

func scanSession(row pgx.Row) (session.Session, error) {
	var s session.Session
	var startRaw, endRaw string
	err := row.Scan(
		&s.ID,
		&s.BatchID,
		&s.Title,
		&s.Day,
		&startRaw,
		&endRaw,
		&s.Location,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.BatchName,
	)
	if err != nil {
		return session.Session{}, err
	}
	if s.StartTime, err = schedule.ParseTimeOfDay(startRaw); err != nil {
		return session.Session{}, err
	}
	if s.EndTime, err = schedule.ParseTimeOfDay(endRaw); err != nil {
		return session.Session{}, err
	}
	return s, nil
}

// Create implements session.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, s session.Session) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sessions (id, batch_id, title, day, start_time, end_time, location, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	result := s
	err := q.QueryRow(ctx, query,
		s.BatchID,
		s.Title,
		s.Day,
		s.StartTime.String(),
		s.EndTime.String(),
		s.Location,
	).Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return result, nil
}

// GetByID implements session.SessionRepository.
func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN batches b ON b.id = s.batch_id
		WHERE s.id = $1
	`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// ListByBatch implements session.SessionRepository.
func (r *sessionRepositoryImpl) ListByBatch(ctx context.Context, batchID string) ([]session.Session, error) {
	return r.list(ctx, ` WHERE s.batch_id = $1`, batchID)
}

// ListByDay implements session.SessionRepository.
func (r *sessionRepositoryImpl) ListByDay(ctx context.Context, day time.Time) ([]session.Session, error) {
	return r.list(ctx, ` WHERE s.day = $1`, day)
}

func (r *sessionRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN batches b ON b.id = s.batch_id` + where + `
		ORDER BY s.day ASC, s.start_time ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}

// Update implements session.SessionRepository.
func (r *sessionRepositoryImpl) Update(ctx context.Context, req session.UpdateSessionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE sessions SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIdx)
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Day != nil {
		day, err := time.Parse("2006-01-02", *req.Day)
		if err != nil {
			return fmt.Errorf("invalid day: %w", err)
		}
		query += fmt.Sprintf(", day = $%d", argIdx)
		args = append(args, day)
		argIdx++
	}
	if req.StartTime != nil {
		t, err := schedule.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			return err
		}
		query += fmt.Sprintf(", start_time = $%d", argIdx)
		args = append(args, t.String())
		argIdx++
	}
	if req.EndTime != nil {
		t, err := schedule.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			return err
		}
		query += fmt.Sprintf(", end_time = $%d", argIdx)
		args = append(args, t.String())
		argIdx++
	}
	if req.Location != nil {
		query += fmt.Sprintf(", location = $%d", argIdx)
		args = append(args, *req.Location)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

// Delete implements session.SessionRepository.
func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM sessions WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}
