package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `u.id, u.email, u.password_hash, u.role, u.created_at, u.updated_at, e.id`

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.email = $1
	`

	var result user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&result.ID,
		&result.Email,
		&result.PasswordHash,
		&result.Role,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.EmployeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return result, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.id = $1
	`

	var result user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Email,
		&result.PasswordHash,
		&result.Role,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.EmployeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return result, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, email, password_hash, role, created_at, updated_at
	`

	var result user.User
	err := q.QueryRow(ctx, query, newUser.Email, newUser.PasswordHash, newUser.Role).Scan(
		&result.ID,
		&result.Email,
		&result.PasswordHash,
		&result.Role,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return result, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// ListByRole implements user.UserRepository.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.role = $1
		ORDER BY u.email ASC
	`

	rows, err := q.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.EmployeeID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// UpdateRole implements user.UserRepository.
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, role, userID)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements user.UserRepository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	commandTag, err := q.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM users WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
