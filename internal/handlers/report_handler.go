package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
	"github.com/sazonapp/sazon-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportReceta handles POST /api/reports/recetas/:id.
func (h *ReportHandler) ReportReceta(c *fiber.Ctx) error {
	return h.submit(c, models.TargetReceta)
}

// ReportUsuario handles POST /api/reports/usuarios/:id.
func (h *ReportHandler) ReportUsuario(c *fiber.Ctx) error {
	return h.submit(c, models.TargetUsuario)
}

// ReportComentario handles POST /api/reports/comentarios/:id.
func (h *ReportHandler) ReportComentario(c *fiber.Ctx) error {
	return h.submit(c, models.TargetComentario)
}

func (h *ReportHandler) submit(c *fiber.Ctx, targetType string) error {
	user, err := reqctx.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid target ID")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.SubmitReport(user.ID, targetType, targetID, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}
