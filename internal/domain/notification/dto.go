package notification

import (
	"time"

	"github.com/Dev4EM/emp-sub000/internal/pkg/validator"
)

// CreateNotificationRequest represents a request to create a notification
type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
}

// BroadcastRequest represents an admin broadcast to every active employee
type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (r *BroadcastRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkAsReadRequest represents a request to mark notifications as read
type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

func (r *MarkAsReadRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NotificationIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "notification_ids",
			Message: "notification_ids must not be empty",
		})
	}
	for _, id := range r.NotificationIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "notification_ids",
				Message: "notification_ids must contain valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"recipient_id"`
	SenderID    *string                `json:"sender_id,omitempty"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
	IsRead      bool                   `json:"is_read"`
	ReadAt      *time.Time             `json:"read_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// UnreadCountResponse represents unread count response
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// SSETokenResponse carries a short-lived token for opening the event
// stream, since EventSource cannot send an Authorization header.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
