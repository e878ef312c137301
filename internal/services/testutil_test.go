package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sazonapp/sazon-backend/internal/clock"
	"github.com/sazonapp/sazon-backend/internal/models"
)

// testNow is the instant every test clock returns.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testClock() clock.Fixed {
	return clock.Fixed{T: testNow}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Recipe{},
		&models.Comment{},
		&models.Report{},
		&models.AuditLogEntry{},
		&models.Notification{},
		&models.SystemLog{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createRecipe(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		ID:       uuid.New(),
		AuthorID: author.ID,
		Title:    title,
	}
	require.NoError(t, db.Create(&recipe).Error)
	return &recipe
}

func createComment(t *testing.T, db *gorm.DB, recipe *models.Recipe, author *models.User, body string) *models.Comment {
	t.Helper()
	comment := models.Comment{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		AuthorID: author.ID,
		Body:     body,
	}
	require.NoError(t, db.Create(&comment).Error)
	return &comment
}

// recordingNotifier captures Notify calls for assertions.
type recordingNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	UserID uuid.UUID
	Title  string
	Body   string
	Data   map[string]string
}

func (r *recordingNotifier) Notify(userID uuid.UUID, title, body string, data map[string]string) {
	r.calls = append(r.calls, notifyCall{UserID: userID, Title: title, Body: body, Data: data})
}
