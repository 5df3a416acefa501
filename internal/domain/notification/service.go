package notification

import (
	"context"
	"time"

	"github.com/Dev4EM/emp-sub000/internal/pkg/sse"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error
	Broadcast(ctx context.Context, senderID string, req BroadcastRequest) error

	// Direct operations
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// Maintenance
	PurgeRead(ctx context.Context, olderThan time.Duration) (int, error)

	// SSE subscription
	Subscribe(userID string) (<-chan sse.Event, func())

	// Lifecycle
	Stop()
}
