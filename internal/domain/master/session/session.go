package session

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

// Session is a single scheduled class or meeting inside a batch.
type Session struct {
	ID        string
	BatchID   string
	Title     string
	Day       time.Time
	StartTime schedule.TimeOfDay
	EndTime   schedule.TimeOfDay
	Location  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	BatchName *string
}
