package schedule

import "errors"

var (
	ErrShiftNotFound         = errors.New("shift not found")
	ErrShiftLabelExists      = errors.New("a shift with this label already exists")
	ErrDefaultShiftMissing   = errors.New("default shift label resolves to no shift window")
	ErrOverrideNotFound      = errors.New("week-off override not found")
	ErrOverrideAlreadyExists = errors.New("a week-off override already exists for this employee and day")
)
