package notification

import (
	"context"
	"time"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string, userID string) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}
