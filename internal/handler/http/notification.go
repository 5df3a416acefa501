package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/notification"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
	"github.com/Dev4EM/emp-sub000/internal/pkg/jwt"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	MarkAllAsRead(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Broadcast(w http.ResponseWriter, r *http.Request)

	// SSE
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
	jwtService   jwt.Service
}

func NewNotificationHandler(notifService notification.Service, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notifService: notifService,
		jwtService:   jwtService,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// List returns paginated notifications for the authenticated user
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)
	unreadOnly := getBoolQueryParam(r, "unread_only", false)

	result, err := h.notifService.GetNotifications(r.Context(), userID, page, pageSize, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UnreadCount returns the count of unread notifications
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	count, err := h.notifService.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, notification.UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead marks specified notifications as read
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req notification.MarkAsReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.notifService.MarkAsRead(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}

// MarkAllAsRead marks all notifications as read
func (h *notificationHandlerImpl) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.notifService.MarkAllAsRead(r.Context(), userID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All notifications marked as read", nil)
}

// Delete removes a notification
func (h *notificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	notifID := chi.URLParam(r, "id")
	if notifID == "" {
		response.BadRequest(w, "Notification ID is required", nil)
		return
	}

	if err := h.notifService.Delete(r.Context(), userID, notifID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification deleted", nil)
}

// Broadcast sends an announcement to every active employee (admin)
func (h *notificationHandlerImpl) Broadcast(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req notification.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.notifService.Broadcast(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Broadcast queued", nil)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, notification.SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the SSE connection for real-time notifications
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send custom headers, so the token rides the
	// query string.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.notifService.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
