// Package reqctx carries per-request values through Fiber locals: the JWT
// subject and, once the block gate has run, the resolved current user.
// There is no ambient session state anywhere else.
package reqctx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/models"
)

const currentUserKey = "current_user"

var ErrNoUser = errors.New("no authenticated user in context")

// UserID extracts the user UUID from the JWT claims placed in locals by
// the JWT middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ErrNoUser
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrNoUser
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrNoUser
	}

	return uuid.Parse(sub)
}

// SetCurrentUser stores the resolved user for the rest of the request.
func SetCurrentUser(c *fiber.Ctx, u *models.User) {
	c.Locals(currentUserKey, u)
}

// CurrentUser returns the user resolved by the block gate.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	u, ok := c.Locals(currentUserKey).(*models.User)
	if !ok || u == nil {
		return nil, ErrNoUser
	}
	return u, nil
}
