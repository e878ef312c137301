package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
	"github.com/sazonapp/sazon-backend/internal/reqctx"
)

func newGateApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	app := fiber.New()

	// Stand-in for the JWT middleware: puts a parsed token with the sub
	// claim from the X-Test-User header into locals.
	app.Use(func(c *fiber.Ctx) error {
		sub := c.Get("X-Test-User")
		if sub != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"sub": sub}})
		}
		return c.Next()
	})
	app.Use(BlockGate(db))

	ok := func(c *fiber.Ctx) error {
		user, err := reqctx.CurrentUser(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user": user.Username})
	}
	app.Get("/api/me", ok)
	app.Get("/api/recetas", ok)
	app.Post("/api/reports/recetas/:id", ok)
	app.Get("/api/notifications", ok)
	app.Put("/api/notifications/:id/read", ok)
	app.Post("/api/auth/logout", ok)

	return app, db
}

func seedGateUser(t *testing.T, db *gorm.DB, blocked bool) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Username: "u" + uuid.NewString()[:8],
		Password: "hashed",
		Role:     "user",
	}
	if blocked {
		reason := "Incumplimiento de las normas"
		user.IsBlocked = true
		user.BlockReason = &reason
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func doGateReq(t *testing.T, app *fiber.App, method, path string, user *models.User) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		req.Header.Set("X-Test-User", user.ID.String())
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestBlockGate_AllowsHealthyUserEverywhere(t *testing.T) {
	app, db := newGateApp(t)
	user := seedGateUser(t, db, false)

	for _, route := range [][2]string{
		{fiber.MethodGet, "/api/me"},
		{fiber.MethodGet, "/api/recetas"},
		{fiber.MethodPost, "/api/reports/recetas/" + uuid.NewString()},
		{fiber.MethodGet, "/api/notifications"},
	} {
		status, _ := doGateReq(t, app, route[0], route[1], user)
		assert.Equal(t, fiber.StatusOK, status, "%s %s", route[0], route[1])
	}
}

func TestBlockGate_BlockedUserOutsideAllowList(t *testing.T) {
	app, db := newGateApp(t)
	user := seedGateUser(t, db, true)

	for _, route := range [][2]string{
		{fiber.MethodGet, "/api/recetas"},
		{fiber.MethodPost, "/api/reports/recetas/" + uuid.NewString()},
	} {
		status, body := doGateReq(t, app, route[0], route[1], user)
		assert.Equal(t, fiber.StatusForbidden, status, "%s %s", route[0], route[1])
		assert.Equal(t, dto.CodeAccountBlocked, body.Code)
		// The stored block reason travels with the rejection.
		assert.Equal(t, "Incumplimiento de las normas", body.Message)
	}
}

func TestBlockGate_BlockedUserAllowList(t *testing.T) {
	app, db := newGateApp(t)
	user := seedGateUser(t, db, true)

	for _, route := range [][2]string{
		{fiber.MethodGet, "/api/me"},
		{fiber.MethodGet, "/api/notifications"},
		{fiber.MethodPut, "/api/notifications/" + uuid.NewString() + "/read"},
		{fiber.MethodPost, "/api/auth/logout"},
	} {
		status, _ := doGateReq(t, app, route[0], route[1], user)
		assert.Equal(t, fiber.StatusOK, status, "%s %s", route[0], route[1])
	}
}

func TestBlockGate_RejectsAnonymousAndUnknownUsers(t *testing.T) {
	app, _ := newGateApp(t)

	status, _ := doGateReq(t, app, fiber.MethodGet, "/api/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	ghost := models.User{ID: uuid.New()}
	status, _ = doGateReq(t, app, fiber.MethodGet, "/api/me", &ghost)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
