package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	ErrPunchNotFound = errors.New("attendance record not found")
	ErrInvalidRange  = errors.New("invalid date range")
)
