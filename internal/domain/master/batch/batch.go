package batch

import "time"

// Batch is a cohort inside a program, bounded by start and end dates.
type Batch struct {
	ID        string
	ProgramID string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	ProgramName *string
}
