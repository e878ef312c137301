package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
)

// allowRule matches one (method, path prefix) pair a blocked account may
// still reach.
type allowRule struct {
	method string
	prefix string
}

// Blocked accounts keep exactly these: reading their own profile, reading
// and acknowledging notifications, and logging out.
var blockedAllowList = []allowRule{
	{fiber.MethodGet, "/api/me"},
	{fiber.MethodGet, "/api/notifications"},
	{fiber.MethodPut, "/api/notifications"},
	{fiber.MethodPost, "/api/auth/logout"},
}

func allowedWhileBlocked(method, path string) bool {
	for _, rule := range blockedAllowList {
		if method == rule.method && strings.HasPrefix(path, rule.prefix) {
			return true
		}
	}
	return false
}

// BlockGate resolves the authenticated user once per request, stores it
// for downstream handlers, and rejects blocked accounts outside the
// allow-list. It is a pure guard: no state is mutated here.
func BlockGate(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := reqctx.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if user.IsBlocked && !allowedWhileBlocked(c.Method(), c.Path()) {
			message := "Tu cuenta ha sido bloqueada"
			if user.BlockReason != nil {
				message = *user.BlockReason
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    dto.CodeAccountBlocked,
				Message: message,
			})
		}

		reqctx.SetCurrentUser(c, &user)
		return c.Next()
	}
}
