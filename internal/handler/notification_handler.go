package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	list, err := h.notificationService.GetNotifications(currentUser(c).ID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(list, ""))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	count, err := h.notificationService.GetUnreadCount(currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"unread_count": count}, ""))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	notification, err := h.notificationService.MarkRead(notificationID, currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(notification, "Notification marked as read"))
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notificationService.MarkAllRead(currentUser(c).ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "All notifications marked as read"))
}

func (h *NotificationHandler) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.notificationService.Delete(notificationID, currentUser(c).ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Notification deleted"))
}
