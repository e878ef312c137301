package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/services"
)

// fail maps a service error to its HTTP status and machine-checkable
// code. Unknown errors become an opaque 500: any transaction behind them
// has already rolled back in full.
func fail(c *fiber.Ctx, err error) error {
	type mapping struct {
		status int
		code   string
	}

	known := []struct {
		err error
		m   mapping
	}{
		{services.ErrTargetNotFound, mapping{fiber.StatusNotFound, dto.CodeNotFound}},
		{services.ErrReportNotFound, mapping{fiber.StatusNotFound, dto.CodeNotFound}},
		{services.ErrUserNotFound, mapping{fiber.StatusNotFound, dto.CodeNotFound}},
		{services.ErrRecipeNotFound, mapping{fiber.StatusNotFound, dto.CodeNotFound}},
		{services.ErrNotificationNotFound, mapping{fiber.StatusNotFound, dto.CodeNotFound}},
		{services.ErrSelfReport, mapping{fiber.StatusUnprocessableEntity, dto.CodeSelfTarget}},
		{services.ErrInvalidReason, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrShortDescription, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrInvalidTargetType, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrInvalidStatus, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrResponseRequired, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrResponseTooLong, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrInvalidAction, mapping{fiber.StatusUnprocessableEntity, dto.CodeValidation}},
		{services.ErrDuplicatePending, mapping{fiber.StatusConflict, dto.CodeDuplicatePending}},
		{services.ErrAlreadyBlocked, mapping{fiber.StatusConflict, dto.CodeInvalidState}},
		{services.ErrNotBlocked, mapping{fiber.StatusConflict, dto.CodeInvalidState}},
		{services.ErrReportNotPending, mapping{fiber.StatusConflict, dto.CodeInvalidState}},
		{services.ErrRecipeBlocked, mapping{fiber.StatusForbidden, dto.CodeForbidden}},
	}

	for _, k := range known {
		if errors.Is(err, k.err) {
			return c.Status(k.m.status).JSON(dto.ErrorResponse{
				Error: true, Code: k.m.code, Message: err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: dto.CodeInternal, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: dto.CodeValidation, Message: message,
	})
}
