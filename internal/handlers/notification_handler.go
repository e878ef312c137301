package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
	"github.com/sazonapp/sazon-backend/internal/services"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	notifications, total, err := h.notificationService.List(user.ID, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}

// MarkRead handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(user.ID, notificationID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Marked as read"})
}
