package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, approves leave
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has admin access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve leave requests
func (u *User) CanApprove() bool {
	return u.IsAdmin()
}
