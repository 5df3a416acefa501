package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
)

// Service runs the scheduled background work: reminding employees who
// forgot to check out and purging stale read notifications.
type Service struct {
	punchRepo    attendance.PunchRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Service
	location     *time.Location
	retention    time.Duration
	logger       *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewReminderService(
	punchRepo attendance.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
	location *time.Location,
	retention time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		location:     location,
		retention:    retention,
		logger:       logger,
		now:          time.Now,
	}
}

// NotifyForgotCheckouts finds punches from previous days that were
// never closed and queues a reminder for each employee. Today's open
// punches are skipped, they may still close normally.
func (s *Service) NotifyForgotCheckouts(ctx context.Context) error {
	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	cutoff := today.AddDate(0, 0, -1)

	open, err := s.punchRepo.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open punches: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	var reqs []notification.CreateNotificationRequest
	for _, punch := range open {
		emp, err := s.employeeRepo.GetByID(ctx, punch.EmployeeID)
		if err != nil {
			s.logger.Warn("skipping forgot-checkout reminder",
				"employee_id", punch.EmployeeID, "error", err)
			continue
		}
		if emp.UserID == nil {
			continue
		}

		day := punch.Day.Format("2006-01-02")
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: *emp.UserID,
			Type:        notification.TypeForgotCheckout,
			Title:       "Missing check-out",
			Message:     fmt.Sprintf("You did not check out on %s. Please contact your administrator.", day),
			Data: map[string]interface{}{
				"punch_id": punch.ID,
				"day":      day,
			},
		})
	}

	if len(reqs) == 0 {
		return nil
	}
	if err := s.notifier.QueueBulkNotification(ctx, reqs); err != nil {
		return fmt.Errorf("failed to queue forgot-checkout reminders: %w", err)
	}

	s.logger.Info("queued forgot-checkout reminders", "count", len(reqs))
	return nil
}

// PurgeNotifications deletes read notifications older than the
// retention window.
func (s *Service) PurgeNotifications(ctx context.Context) error {
	deleted, err := s.notifier.PurgeRead(ctx, s.retention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged read notifications", "count", deleted)
	}
	return nil
}
