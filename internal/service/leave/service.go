package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/domain/user"
)

type leaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	notifier     notification.Service
	location     *time.Location
	logger       *slog.Logger

	now func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
	location *time.Location,
	logger *slog.Logger,
) leave.LeaveService {
	return &leaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		location:     location,
		logger:       logger,
		now:          time.Now,
	}
}

func claimsFromContext(ctx context.Context) (userID string, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", err
	}
	userID, _ = claims["user_id"].(string)
	employeeID, _ = claims["employee_id"].(string)
	return userID, employeeID, nil
}

func toLeaveResponse(rec leave.LeaveRecord) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:              rec.ID,
		EmployeeID:      rec.EmployeeID,
		EmployeeName:    rec.EmployeeName,
		Day:             rec.Day.Format("2006-01-02"),
		Kind:            rec.Kind,
		Portion:         rec.Portion,
		Half:            rec.Half,
		Reason:          rec.Reason,
		Status:          rec.Status,
		DecidedBy:       rec.DecidedBy,
		RejectionReason: rec.RejectionReason,
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.DecidedAt != nil {
		decidedAt := rec.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}

func (s *leaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	_, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if employeeID == "" {
		return leave.LeaveResponse{}, user.ErrInsufficientPermissions
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, s.location)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	half := leave.HalfNone
	if req.Portion == string(leave.PortionHalf) {
		half = leave.Half(req.Half)
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRecord{
		EmployeeID: employeeID,
		Day:        day,
		Kind:       leave.Kind(req.Kind),
		Portion:    leave.Portion(req.Portion),
		Half:       half,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	// Notify every admin; a notification failure never fails the apply.
	s.notifyAdmins(ctx, created)

	return toLeaveResponse(created), nil
}

func (s *leaveServiceImpl) notifyAdmins(ctx context.Context, rec leave.LeaveRecord) {
	emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		s.logger.Warn("failed to load employee for leave notification", "error", err)
		return
	}
	admins, err := s.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		s.logger.Warn("failed to list admins for leave notification", "error", err)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(admins))
	for _, admin := range admins {
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: admin.ID,
			SenderID:    emp.UserID,
			Type:        notification.TypeLeaveApplied,
			Title:       "New leave request",
			Message:     emp.FullName + " applied for leave on " + rec.Day.Format("2006-01-02"),
			Data: map[string]interface{}{
				"leave_id":    rec.ID,
				"employee_id": rec.EmployeeID,
				"day":         rec.Day.Format("2006-01-02"),
			},
		})
	}
	if err := s.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		s.logger.Warn("failed to queue leave notification", "error", err)
	}
}

func (s *leaveServiceImpl) Cancel(ctx context.Context, id string) error {
	_, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	rec, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.EmployeeID != employeeID {
		return leave.ErrNotRecordOwner
	}
	if rec.IsDecided() {
		return leave.ErrLeaveAlreadyProcessed
	}

	return s.leaveRepo.Delete(ctx, id)
}

func (s *leaveServiceImpl) GetMyLeaves(ctx context.Context, filter leave.Filter) (leave.ListLeavesResponse, error) {
	_, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}
	if employeeID == "" {
		return leave.ListLeavesResponse{}, user.ErrInsufficientPermissions
	}
	filter.EmployeeID = &employeeID
	return s.ListLeaves(ctx, filter)
}

func (s *leaveServiceImpl) ListLeaves(ctx context.Context, filter leave.Filter) (leave.ListLeavesResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeavesResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeavesResponse{}, err
	}

	responses := make([]leave.LeaveResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toLeaveResponse(rec))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return leave.ListLeavesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Leaves:     responses,
	}, nil
}

func (s *leaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved, nil)
}

func (s *leaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	return s.decide(ctx, req.ID, leave.StatusRejected, &req.Reason)
}

func (s *leaveServiceImpl) decide(ctx context.Context, id string, status leave.Status, reason *string) (leave.LeaveResponse, error) {
	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	rec, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if rec.IsDecided() {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.now()
	rec.Status = status
	rec.DecidedBy = &userID
	rec.DecidedAt = &now
	rec.RejectionReason = reason

	if err := s.leaveRepo.UpdateStatus(ctx, rec); err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyDecision(ctx, rec)

	return toLeaveResponse(rec), nil
}

func (s *leaveServiceImpl) notifyDecision(ctx context.Context, rec leave.LeaveRecord) {
	emp, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}

	notifType := notification.TypeLeaveApproved
	title := "Leave approved"
	message := "Your leave for " + rec.Day.Format("2006-01-02") + " was approved"
	if rec.Status == leave.StatusRejected {
		notifType = notification.TypeLeaveRejected
		title = "Leave rejected"
		message = "Your leave for " + rec.Day.Format("2006-01-02") + " was rejected"
	}

	err = s.notifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: *emp.UserID,
		SenderID:    rec.DecidedBy,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"leave_id": rec.ID,
			"day":      rec.Day.Format("2006-01-02"),
			"status":   string(rec.Status),
		},
	})
	if err != nil {
		s.logger.Warn("failed to queue leave decision notification", "error", err)
	}
}
