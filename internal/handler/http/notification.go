package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	notificationservice "github.com/kantor-hq/hr-backoffice-go/internal/service/notification"
)

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService *notificationservice.Service
}

func NewNotificationHandler(notificationService *notificationservice.Service) NotificationHandler {
	return &notificationHandlerImpl{
		notificationService: notificationService,
	}
}

// List returns the authenticated employee's feed, newest first. Global rows
// are included.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	pageSize := getIntQueryParam(r, "page_size", 20)
	unreadOnly := getBoolQueryParam(r, "unread_only", false)

	result, err := h.notificationService.List(r.Context(), employeeID, unreadOnly, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UnreadCount returns the badge counter.
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"unread_count": count})
}

// MarkAsRead flips one owned notification to read.
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), chi.URLParam(r, "id"), employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// Send dispatches a targeted or global notification. Admin only.
func (h *notificationHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req notification.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	sent, err := h.notificationService.Send(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Notification sent", notification.ToResponse(sent))
}
