package response

import (
	"errors"
	"net/http"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/auth"
	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/batch"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/program"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/session"
	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/domain/report"
	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token invalid or expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidEmailFormat),
		errors.Is(err, user.ErrInvalidPasswordLength):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, "Department name already exists")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, schedule.ErrShiftLabelExists):
		Conflict(w, "Shift label already exists")
	case errors.Is(err, schedule.ErrDefaultShiftMissing):
		BadRequest(w, "Default shift cannot be removed", nil)
	case errors.Is(err, schedule.ErrOverrideNotFound):
		NotFound(w, "Week-off override not found")
	case errors.Is(err, schedule.ErrOverrideAlreadyExists):
		Conflict(w, "Week-off override already exists for this day")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrPunchNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveAlreadyApplied):
		Conflict(w, "Leave already applied for this day")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave record already processed")
	case errors.Is(err, leave.ErrNotRecordOwner):
		Forbidden(w, "Leave record belongs to another employee")

	// Master data errors
	case errors.Is(err, program.ErrProgramNotFound):
		NotFound(w, "Program not found")
	case errors.Is(err, program.ErrProgramExists):
		Conflict(w, "Program name already exists")
	case errors.Is(err, batch.ErrBatchNotFound):
		NotFound(w, "Batch not found")
	case errors.Is(err, batch.ErrBatchExists):
		Conflict(w, "Batch name already exists in this program")
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrSessionOverlap):
		Conflict(w, "Session overlaps an existing session")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Not the recipient of this notification")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, "Invalid notification type", nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)
	case errors.Is(err, report.ErrEmptyReport):
		NotFound(w, "No employees match the report filter")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
