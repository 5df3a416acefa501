package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/pkg/sse"
)

// Config controls the async write pipeline.
type Config struct {
	BatchSize     int
	FlushInterval time.Duration
	WorkerCount   int
	QueueSize     int
}

// DefaultConfig returns sensible defaults for the notification pipeline.
func DefaultConfig() Config {
	return Config{
		BatchSize:     100,
		FlushInterval: 5 * time.Second,
		WorkerCount:   2,
		QueueSize:     1000,
	}
}

type notificationServiceImpl struct {
	repo         notification.Repository
	employeeRepo employee.EmployeeRepository
	hub          *sse.Hub
	logger       *slog.Logger
	config       Config

	queue  chan *notification.Notification
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewNotificationService creates a notification service and starts its
// background insert workers.
func NewNotificationService(
	repo notification.Repository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	logger *slog.Logger,
	config Config,
) notification.Service {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1000
	}

	s := &notificationServiceImpl{
		repo:         repo,
		employeeRepo: employeeRepo,
		hub:          hub,
		logger:       logger,
		config:       config,
		queue:        make(chan *notification.Notification, config.QueueSize),
		stopCh:       make(chan struct{}),
	}

	for i := 0; i < config.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

// worker drains the queue, writing notifications in batches. A partial
// batch is flushed when the interval elapses or on shutdown.
func (s *notificationServiceImpl) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= s.config.BatchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-s.stopCh:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
				default:
					if len(batch) > 0 {
						s.flush(batch)
					}
					s.logger.Debug("notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *notificationServiceImpl) flush(batch []*notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("failed to persist notification batch", "count", len(batch), "error", err)
		return
	}

	for _, n := range batch {
		s.hub.Publish(n.RecipientID, sse.Event{
			UserID: n.RecipientID,
			Event:  "notification",
			Data:   toResponse(n),
		})
	}
}

func (s *notificationServiceImpl) build(req notification.CreateNotificationRequest) *notification.Notification {
	return &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		SenderID:    req.SenderID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		CreatedAt:   time.Now(),
	}
}

// QueueNotification implements notification.Service.
func (s *notificationServiceImpl) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if !req.Type.IsValid() {
		return notification.ErrInvalidNotificationType
	}

	n := s.build(req)
	select {
	case s.queue <- n:
		return nil
	default:
		// Queue is saturated, write synchronously instead of dropping.
		s.logger.Warn("notification queue full, inserting directly", "recipient_id", n.RecipientID)
		return s.directInsert(ctx, n)
	}
}

// QueueBulkNotification implements notification.Service.
func (s *notificationServiceImpl) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (s *notificationServiceImpl) directInsert(ctx context.Context, n *notification.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  "notification",
		Data:   toResponse(n),
	})
	return nil
}

// Broadcast implements notification.Service.
func (s *notificationServiceImpl) Broadcast(ctx context.Context, senderID string, req notification.BroadcastRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userIDs, err := s.employeeRepo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list broadcast recipients: %w", err)
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID == senderID {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			RecipientID: userID,
			SenderID:    &senderID,
			Type:        notification.TypeBroadcast,
			Title:       req.Title,
			Message:     req.Message,
		})
	}

	return s.QueueBulkNotification(ctx, reqs)
}

// GetNotifications implements notification.Service.
func (s *notificationServiceImpl) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, *toResponse(n))
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// GetUnreadCount implements notification.Service.
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead implements notification.Service.
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

// MarkAllAsRead implements notification.Service.
func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete implements notification.Service.
func (s *notificationServiceImpl) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, id, userID)
}

// PurgeRead implements notification.Service.
func (s *notificationServiceImpl) PurgeRead(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	deleted, err := s.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge read notifications: %w", err)
	}
	return deleted, nil
}

// Subscribe implements notification.Service.
func (s *notificationServiceImpl) Subscribe(userID string) (<-chan sse.Event, func()) {
	ch, cancel := s.hub.Subscribe(userID)
	return ch, cancel
}

// Stop implements notification.Service.
func (s *notificationServiceImpl) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func toResponse(n *notification.Notification) *notification.NotificationResponse {
	return &notification.NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		Data:        n.Data,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}
