package notification

import "errors"

// Notification domain errors
var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrNotRecipient            = errors.New("unauthorized to access this notification")
	ErrInvalidNotificationType = errors.New("invalid notification type")
)
