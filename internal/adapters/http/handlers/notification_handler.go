package handlers

import (
	"errors"
	"strconv"

	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/pkg/pagination"
	"anpere-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles admin notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles notification listing
// @Summary List notifications
// @Description List notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	notifications, total, err := h.notificationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
		"meta":          pagination.GetMeta(params, total),
	})
}

// UnreadCount handles the unread badge counter
// @Summary Count unread notifications
// @Description Return the number of unread notifications
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.UnreadCount(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to count notifications")
	}

	return response.Success(c, "Unread count retrieved successfully", fiber.Map{
		"count": count,
	})
}

// MarkRead handles marking a single notification as read
// @Summary Mark notification as read
// @Description Mark a notification as read. Already-read notifications are left untouched.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	notification, err := h.notificationService.MarkRead(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification as read")
	}

	return response.Success(c, "Notification marked as read", fiber.Map{
		"notification": notification,
	})
}

// MarkAllRead handles marking every notification as read
// @Summary Mark all notifications as read
// @Description Mark every unread notification as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(c.Context()); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications as read")
	}

	return response.Success(c, "All notifications marked as read", nil)
}

// Delete handles notification removal
// @Summary Delete notification
// @Description Delete a notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to delete notification")
	}

	return response.Success(c, "Notification deleted successfully", nil)
}
