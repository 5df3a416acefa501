package program

import "time"

// Program is a top-level training program employees are attached to.
type Program struct {
	ID          string
	Name        string
	Code        *string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
