package department

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
)

// Department groups employees and carries the default week-off weekday
// set the day resolution policy falls back to.
type Department struct {
	ID          string
	Name        string
	WeekOffDays []schedule.Weekday
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
