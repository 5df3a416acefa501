package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveApplied     NotificationType = "leave_applied"
	TypeLeaveApproved    NotificationType = "leave_approved"
	TypeLeaveRejected    NotificationType = "leave_rejected"
	TypeForgotCheckout   NotificationType = "forgot_checkout"
	TypeSessionScheduled NotificationType = "session_scheduled"
	TypeBroadcast        NotificationType = "broadcast"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeLeaveApplied,
		TypeLeaveApproved,
		TypeLeaveRejected,
		TypeForgotCheckout,
		TypeSessionScheduled,
		TypeBroadcast,
	}
}

// IsValid reports whether t is a known notification type.
func (t NotificationType) IsValid() bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
