package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave record not found")
	ErrLeaveAlreadyApplied   = errors.New("leave has already been applied for this day")
	ErrLeaveAlreadyProcessed = errors.New("leave record has already been approved or rejected")
	ErrNotRecordOwner        = errors.New("leave record belongs to another employee")
)
