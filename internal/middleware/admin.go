package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sazonapp/sazon-backend/internal/config"
	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
)

// AdminRequired checks, in order: the operations admin token header, the
// config-based admin email list, and the user's DB role (already resolved
// by the block gate). Must run after BlockGate.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		if token, ok := c.Locals("user").(*jwt.Token); ok && token != nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if email, _ := claims["email"].(string); contains(adminEmails, email) {
					return c.Next()
				}
			}
		}

		if user, err := reqctx.CurrentUser(c); err == nil && user.IsAdmin() {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Code: dto.CodeForbidden, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
