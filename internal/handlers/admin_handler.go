package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
	"github.com/sazonapp/sazon-backend/internal/services"
)

// AdminHandler serves the moderation queue, the audit trail and direct
// user blocking. All routes behind it require BlockGate + AdminRequired.
type AdminHandler struct {
	moderationService *services.ModerationService
	auditService      *services.AuditService
}

func NewAdminHandler(moderationService *services.ModerationService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService, auditService: auditService}
}

// ListReports handles GET /api/admin/reports?status=&limit=&offset=.
func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	reports, total, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(dto.ReportListResponse{
		Reports: reports,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// ResolveReport handles PUT /api/admin/reports/:id.
func (h *AdminHandler) ResolveReport(c *fiber.Ctx) error {
	admin, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderationService.ResolveReport(admin.ID, reportID, &req, c.IP())
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// QueryLogs handles GET /api/admin/logs.
func (h *AdminHandler) QueryLogs(c *fiber.Ctx) error {
	q := dto.AuditLogQuery{
		Action:     c.Query("action", ""),
		EntityType: c.Query("entity_type", ""),
	}
	q.Limit, _ = strconv.Atoi(c.Query("limit", "50"))
	q.Offset, _ = strconv.Atoi(c.Query("offset", "0"))

	if raw := c.Query("admin_id"); raw != "" {
		adminID, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid admin_id")
		}
		q.AdminID = &adminID
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid date_from, expected RFC3339")
		}
		q.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid date_to, expected RFC3339")
		}
		q.DateTo = &t
	}

	entries, total, err := h.auditService.Query(&q)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"logs":   entries,
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
	})
}

// BlockUser handles PUT /api/admin/usuarios/:id/block.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	admin, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.moderationService.BlockUser(admin.ID, userID, req.Reason, c.IP())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}

// UnblockUser handles PUT /api/admin/usuarios/:id/unblock.
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	admin, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.moderationService.UnblockUser(admin.ID, userID, c.IP())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}
